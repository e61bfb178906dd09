package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultTimeout   = 15 * time.Second
	DefaultMinBytes  = 200
	DefaultPace      = 500 * time.Millisecond

	DefaultForeignURL = "https://www.twse.com.tw/rwd/zh/fund/TWT38U"
	DefaultTrustURL   = "https://www.twse.com.tw/rwd/zh/fund/TWT44U"
	DefaultDealerURL  = "https://www.twse.com.tw/rwd/zh/fund/TWT43U"
	DefaultTPEXURL    = "https://www.tpex.org.tw/web/stock/3insti/daily_trade/3itrade_hedge_result.php"

	DefaultListedDir = "data/twse_raw"
	DefaultOTCDir    = "data/tpex_raw"
	DefaultStockList = "stock_list.csv"

	DefaultDays        = 1
	DefaultConcurrency = 5
)

func (c *GathererConfig) applyDefaults() {
	// Fetch defaults
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = DefaultUserAgent
	}
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = DefaultTimeout
	}
	if c.Fetch.MinBytes == 0 {
		c.Fetch.MinBytes = DefaultMinBytes
	}
	if c.Fetch.Pace == 0 {
		c.Fetch.Pace = DefaultPace
	}

	// Source defaults
	if c.Sources.TWSE.ForeignURL == "" {
		c.Sources.TWSE.ForeignURL = DefaultForeignURL
	}
	if c.Sources.TWSE.TrustURL == "" {
		c.Sources.TWSE.TrustURL = DefaultTrustURL
	}
	if c.Sources.TWSE.DealerURL == "" {
		c.Sources.TWSE.DealerURL = DefaultDealerURL
	}
	if c.Sources.TPEX.URL == "" {
		c.Sources.TPEX.URL = DefaultTPEXURL
	}

	// Storage defaults
	if c.Storage.ListedDir == "" {
		c.Storage.ListedDir = DefaultListedDir
	}
	if c.Storage.OTCDir == "" {
		c.Storage.OTCDir = DefaultOTCDir
	}
	if c.Storage.StockList == "" {
		c.Storage.StockList = DefaultStockList
	}

	// Scheduler defaults
	if c.Scheduler.Days == 0 {
		c.Scheduler.Days = DefaultDays
	}
	if c.Scheduler.Concurrency == 0 {
		c.Scheduler.Concurrency = DefaultConcurrency
	}
}
