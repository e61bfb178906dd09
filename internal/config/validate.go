package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *GathererConfig) Validate() error {
	if c.Fetch.MinBytes < 0 {
		return fmt.Errorf("fetch.min_bytes must be >= 0, got %d", c.Fetch.MinBytes)
	}
	if c.Fetch.Timeout < 0 {
		return errors.New("fetch.timeout must be positive")
	}
	if c.Fetch.Pace < 0 {
		return errors.New("fetch.pace must be >= 0")
	}

	if err := validateURL("sources.twse.foreign_url", c.Sources.TWSE.ForeignURL); err != nil {
		return err
	}
	if err := validateURL("sources.twse.trust_url", c.Sources.TWSE.TrustURL); err != nil {
		return err
	}
	if err := validateURL("sources.twse.dealer_url", c.Sources.TWSE.DealerURL); err != nil {
		return err
	}
	if err := validateURL("sources.tpex.url", c.Sources.TPEX.URL); err != nil {
		return err
	}

	if c.Storage.ListedDir == "" {
		return errors.New("storage.listed_dir is required")
	}
	if c.Storage.OTCDir == "" {
		return errors.New("storage.otc_dir is required")
	}
	if c.Storage.ListedDir == c.Storage.OTCDir {
		return errors.New("storage.listed_dir and storage.otc_dir must differ")
	}
	if c.Storage.StockList == "" {
		return errors.New("storage.stock_list is required")
	}

	if c.Scheduler.Days < 1 {
		return fmt.Errorf("scheduler.days must be >= 1, got %d", c.Scheduler.Days)
	}
	if c.Scheduler.Concurrency < 1 {
		return fmt.Errorf("scheduler.concurrency must be >= 1, got %d", c.Scheduler.Concurrency)
	}

	return nil
}

func validateURL(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return fmt.Errorf("%s must be an http(s) URL, got %q", field, value)
	}
	return nil
}
