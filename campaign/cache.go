package campaign

import "sync"

// Send statuses recorded per customer.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// SendResult is the outcome for a single customer, recorded whether the send
// succeeded or not.
type SendResult struct {
	Customer Customer `json:"customer"`
	Status   string   `json:"email_status"`
	Response string   `json:"response,omitempty"`
	Err      string   `json:"error,omitempty"`
}

// Result is one completed campaign: every per-customer outcome plus the
// summary line rendered from them.
type Result struct {
	Sends   []SendResult
	Summary string
}

// Cache stores completed campaigns keyed by company name so re-running the
// same campaign can short-circuit instead of re-sending. Process-lifetime,
// last write wins per key.
type Cache struct {
	mu        sync.RWMutex
	campaigns map[string]Result
}

func NewCache() *Cache {
	return &Cache{campaigns: make(map[string]Result)}
}

func (c *Cache) Get(company string) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.campaigns[company]
	return r, ok
}

func (c *Cache) Put(company string, r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.campaigns[company] = r
}
