package synth

import (
	"strings"
	"testing"

	"avreap/internal/policy"
	"avreap/internal/prober"
)

func TestBuildExcludesRussianStreams(t *testing.T) {
	in := Input{
		SourcePath:     "/src.mkv",
		OutputPath:     "/tmp/out.mkv",
		MainVideoIndex: 0,
		Streams: []prober.Stream{
			{Index: 0, CodecType: "video"},
			{Index: 1, CodecType: "audio", Tags: prober.Tags{Language: "eng"}},
			{Index: 2, CodecType: "audio", Tags: prober.Tags{Language: "rus"}},
			{Index: 3, CodecType: "subtitle", Tags: prober.Tags{Language: "ru"}},
		},
		Encoder:  EncoderPrimary,
		Decision: policy.Decision{CRF: 22, Preset: 4},
	}
	args := Build(in)
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-map 0:1") {
		t.Fatalf("expected english audio stream mapped: %s", joined)
	}
	if strings.Contains(joined, "-map 0:2") || strings.Contains(joined, "-map 0:3") {
		t.Fatalf("expected russian streams excluded: %s", joined)
	}
}

func TestBuildPrimaryEncoderTail(t *testing.T) {
	args := Build(Input{
		SourcePath:     "/src.mkv",
		OutputPath:     "/tmp/out.mkv",
		MainVideoIndex: 0,
		Streams:        []prober.Stream{{Index: 0, CodecType: "video"}},
		Encoder:        EncoderPrimary,
		Decision:       policy.Decision{CRF: 21, Preset: 3},
	})
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-c:v libsvtav1") || !strings.Contains(joined, "-crf 21") || !strings.Contains(joined, "-preset 3") {
		t.Fatalf("unexpected primary tail: %s", joined)
	}
	if args[len(args)-1] != "/tmp/out.mkv" {
		t.Fatalf("expected output path last, got %v", args)
	}
}

func TestBuildSecondaryEncoderTail(t *testing.T) {
	args := Build(Input{
		SourcePath:     "/src.mkv",
		OutputPath:     "/tmp/out.mkv",
		MainVideoIndex: 0,
		Streams:        []prober.Stream{{Index: 0, CodecType: "video"}},
		Encoder:        EncoderSecondary,
		Decision:       policy.Decision{CRF: 23, TileColumns: 2, TileRows: 1, CPUUsed: 4},
	})
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-c:v libaom-av1") || !strings.Contains(joined, "-tile-columns 2") || !strings.Contains(joined, "-cpu-used 4") {
		t.Fatalf("unexpected secondary tail: %s", joined)
	}
}

func TestBuildWebLikeAddsTimestampFlagsAndPadFilter(t *testing.T) {
	args := Build(Input{
		SourcePath:     "/src.mkv",
		OutputPath:     "/tmp/out.mkv",
		WebLike:        true,
		MainVideoIndex: 0,
		Streams:        []prober.Stream{{Index: 0, CodecType: "video"}},
		Encoder:        EncoderPrimary,
		Decision:       policy.Decision{CRF: 24, Preset: 5, PadFilter: "pad=ceil(iw/2)*2:ceil(ih/2)*2,setsar=1"},
	})
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "+genpts") {
		t.Fatalf("expected timestamp safety flags for WebLike source: %s", joined)
	}
	if !strings.Contains(joined, "-vf pad=") {
		t.Fatalf("expected pad filter applied: %s", joined)
	}
}
