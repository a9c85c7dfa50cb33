package main

import (
	"strings"
	"sync"

	"avreap/internal/config"
	"avreap/internal/jobstore"
)

// commandContext lazily loads configuration once per invocation and hands
// out a job store rooted at the configured job-state directory. There is no
// daemon socket to dial: every command here reads the job-record directory
// directly.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) openStore() (*jobstore.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return jobstore.Open(cfg.Paths.JobStateDir)
}
