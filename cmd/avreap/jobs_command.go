package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"avreap/internal/job"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	var statusFlag string

	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "List job records from the job-state directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listJobs(ctx, cmd, statusFlag)
		},
	}

	jobsCmd.Flags().StringVar(&statusFlag, "status", "", "Filter by status: pending|running|success|failed|skipped")
	jobsCmd.AddCommand(newJobsShowCommand(ctx))

	return jobsCmd
}

func listJobs(ctx *commandContext, cmd *cobra.Command, statusFlag string) error {
	store, err := ctx.openStore()
	if err != nil {
		return err
	}
	records, err := store.LoadAll()
	if err != nil {
		return fmt.Errorf("load job records: %w", err)
	}

	var wantStatus job.Status
	if strings.TrimSpace(statusFlag) != "" {
		parsed, ok := job.ParseStatus(statusFlag)
		if !ok {
			return fmt.Errorf("unknown status %q", statusFlag)
		}
		wantStatus = parsed
	}

	filtered := records[:0:0]
	for _, rec := range records {
		if wantStatus != "" && rec.Status != wantStatus {
			continue
		}
		filtered = append(filtered, rec)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	headers := []string{"ID", "Status", "Phase", "Source", "Original", "New", "Reason"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}
	rows := make([][]string, 0, len(filtered))
	for _, rec := range filtered {
		rows = append(rows, []string{
			shortID(rec.ID),
			string(rec.Status),
			string(rec.Phase),
			rec.SourcePath,
			byteCell(rec.OriginalBytes),
			byteCell(rec.NewBytes),
			rec.Reason,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
	return nil
}

func newJobsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one job record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			rec, err := store.Load(args[0])
			if err != nil {
				return fmt.Errorf("load job %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:            %s\n", rec.ID)
			fmt.Fprintf(out, "Status:        %s\n", rec.Status)
			fmt.Fprintf(out, "Phase:         %s\n", rec.Phase)
			fmt.Fprintf(out, "Source:        %s\n", rec.SourcePath)
			if rec.TempPath != "" {
				fmt.Fprintf(out, "Temp path:     %s\n", rec.TempPath)
			}
			fmt.Fprintf(out, "Created:       %s\n", rec.CreatedAt)
			if rec.StartedAt != nil {
				fmt.Fprintf(out, "Started:       %s\n", rec.StartedAt)
			}
			if rec.FinishedAt != nil {
				fmt.Fprintf(out, "Finished:      %s\n", rec.FinishedAt)
			}
			if rec.Reason != "" {
				fmt.Fprintf(out, "Reason:        %s\n", rec.Reason)
			}
			if rec.OriginalBytes > 0 {
				fmt.Fprintf(out, "Original size: %s\n", humanize.Bytes(uint64(rec.OriginalBytes)))
			}
			if rec.NewBytes > 0 {
				fmt.Fprintf(out, "New size:      %s\n", humanize.Bytes(uint64(rec.NewBytes)))
			}
			if rec.Classification != nil {
				fmt.Fprintf(out, "Classification: %s (web=%d disc=%d)\n", rec.Classification.Class, rec.Classification.WebScore, rec.Classification.DiscScore)
			}
			if rec.Video != nil {
				fmt.Fprintf(out, "Video:         %s %dx%d %d-bit hdr=%v\n", rec.Video.Codec, rec.Video.Width, rec.Video.Height, rec.Video.BitDepth, rec.Video.HDR)
			}
			if rec.Encoder != nil {
				fmt.Fprintf(out, "Encoder:       %s crf=%d preset=%d\n", rec.Encoder.Encoder, rec.Encoder.CRF, rec.Encoder.Preset)
			}
			return nil
		},
	}
}

func byteCell(n int64) string {
	if n <= 0 {
		return "-"
	}
	return humanize.Bytes(uint64(n))
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
