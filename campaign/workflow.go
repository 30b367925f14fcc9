package campaign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tributary-dev/tributary/capability"
	"github.com/tributary-dev/tributary/components/tabular"
	"github.com/tributary-dev/tributary/engine"
)

const (
	copywriterInstructions = "You are an expert marketing copywriter. Generate personalized email content that is engaging, professional, and tailored to the recipient's profile."

	// Query handed to the fallback CSV agent when direct parsing yields nothing.
	customerQuery = "SELECT * FROM sample_marketing"
)

// Params binds one workflow instance to its campaign session and uploaded data.
type Params struct {
	SessionID     string
	FileContent   string
	SenderEmail   string
	SenderName    string
	SenderPasskey string
	// Model is the primary content-generation selector; "gemini" when unset.
	Model string
}

// EmailAgent sends one email per Run call to a fixed receiver.
type EmailAgent interface {
	capability.Capability
	Receiver() string
}

// Deps are the injected collaborators. Sleep defaults to time.Sleep; tests
// inject a recorder to assert the backoff schedule.
type Deps struct {
	NewTextAgent  func(model, instructions string) (capability.Capability, error)
	NewEmailAgent func(receiver string) (EmailAgent, error)
	// CSVAgent is the fallback extractor for uploads direct parsing cannot
	// handle. Optional.
	CSVAgent capability.Capability
	Cache    *Cache
	Log      *slog.Logger
	Sleep    func(time.Duration)
}

// Options are the per-run knobs carried in from the request.
type Options struct {
	UseCachedResults bool
	Retry            engine.RetryPolicy
}

// Workflow runs one personalized bulk-email campaign:
// validate, check the cache, extract customer data, generate and send one
// email per customer with retries, cache the outcome, summarize.
type Workflow struct {
	p Params
	d Deps
}

func New(p Params, d Deps) *Workflow {
	if p.Model == "" {
		p.Model = "gemini"
	}
	if d.Cache == nil {
		d.Cache = NewCache()
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Sleep == nil {
		d.Sleep = time.Sleep
	}
	return &Workflow{p: p, d: d}
}

// Run executes the campaign for one company/product pairing and returns the
// summary line. Campaign-fatal conditions (missing fields, no extractable
// data) return an error; individual customer failures never do.
func (w *Workflow) Run(ctx context.Context, companyName, productDescription string, opts Options) (string, error) {
	if companyName == "" || productDescription == "" {
		return "", errors.New("company name and product description are required")
	}
	retry := opts.Retry.Normalized()

	if opts.UseCachedResults {
		if cached, ok := w.d.Cache.Get(companyName); ok {
			w.d.Log.Info("returning cached campaign results", "company", companyName, "session", w.p.SessionID)
			return cached.Summary, nil
		}
	}

	extracted, err := w.extractData(ctx, retry)
	if err != nil {
		return "", err
	}

	customers := ParseCustomers(extracted, w.p.FileContent)
	if len(customers) == 0 {
		return "No valid customers found in CSV data", nil
	}

	sends := make([]SendResult, 0, len(customers))
	for _, c := range customers {
		w.d.Log.Debug("processing customer", "email", c.Email)
		content := w.generateContent(ctx, c, companyName, productDescription)
		sends = append(sends, w.sendWithRetries(ctx, c, content, retry))
	}

	successes := 0
	for _, r := range sends {
		if r.Status == StatusSuccess {
			successes++
		}
	}
	summary := fmt.Sprintf("Successfully sent %d of %d personalized marketing emails", successes, len(sends))
	w.d.Cache.Put(companyName, Result{Sends: sends, Summary: summary})
	return summary, nil
}

// extractData prefers direct deterministic parsing of the upload over the
// agent-based path, which is only consulted when direct parsing yields
// nothing and retried with a fixed delay between attempts.
func (w *Workflow) extractData(ctx context.Context, retry engine.RetryPolicy) (string, error) {
	if table := tabular.FormatTable(w.p.FileContent); table != "" {
		return table, nil
	}
	if w.d.CSVAgent == nil {
		return "", errors.New("no customer data could be extracted from CSV file")
	}
	w.d.Log.Warn("direct CSV parsing failed, trying CSV agent as fallback", "session", w.p.SessionID)

	var lastErr error
	for attempt := 0; attempt < retry.MaxRetries; attempt++ {
		if attempt > 0 {
			w.d.Sleep(retry.Delay)
		}
		resp, err := w.d.CSVAgent.Run(ctx, customerQuery)
		if err != nil {
			lastErr = err
			continue
		}
		if usableData(resp) {
			return resp, nil
		}
		lastErr = fmt.Errorf("agent returned unusable data: %.80s", resp)
	}
	if lastErr != nil {
		return "", fmt.Errorf("failed to get CSV data after %d attempts: %w", retry.MaxRetries, lastErr)
	}
	return "", errors.New("no customer data could be extracted from CSV file")
}

// usableData rejects empty responses and the agents' soft-failure phrasing.
func usableData(resp string) bool {
	t := strings.TrimSpace(resp)
	if t == "" {
		return false
	}
	if strings.Contains(t, "was not found") {
		return false
	}
	return !strings.Contains(strings.ToLower(t), "error")
}

// generateContent tries the configured model, then an alternate, and finally
// falls back to a fixed template. Content generation never fails a campaign.
func (w *Workflow) generateContent(ctx context.Context, c Customer, companyName, productDescription string) string {
	models := []string{w.p.Model, "groq"}
	if w.p.Model == "groq" {
		models[1] = "gemini"
	}

	prompt := contentPrompt(c, companyName, productDescription, w.p.SenderName)
	for _, m := range models {
		agent, err := w.d.NewTextAgent(m, copywriterInstructions)
		if err != nil {
			w.d.Log.Warn("content agent unavailable", "model", m, "err", err)
			continue
		}
		content, err := agent.Run(ctx, prompt)
		if err != nil {
			w.d.Log.Warn("content generation failed", "model", m, "err", err)
			continue
		}
		return content
	}

	w.d.Log.Error("all models failed to generate email content, using fallback template", "email", c.Email)
	return fallbackContent(c, companyName, productDescription, w.p.SenderName)
}

// sendWithRetries delivers one email with exponential backoff. The receiver
// is re-checked before every attempt: a stale agent bound to the previous
// customer is rebuilt rather than trusted.
func (w *Workflow) sendWithRetries(ctx context.Context, c Customer, content string, retry engine.RetryPolicy) SendResult {
	agent, err := w.d.NewEmailAgent(c.Email)
	if err != nil {
		return SendResult{Customer: c, Status: StatusFailed, Err: fmt.Sprintf("Failed to initialize email agent: %v", err)}
	}

	attempt := 0
	for attempt < retry.MaxRetries {
		if agent.Receiver() != c.Email {
			if agent, err = w.d.NewEmailAgent(c.Email); err != nil {
				return SendResult{Customer: c, Status: StatusFailed, Err: fmt.Sprintf("Failed to initialize email agent: %v", err)}
			}
		}

		w.d.Log.Debug("sending email", "email", c.Email, "attempt", attempt+1)
		resp, err := agent.Run(ctx, content)
		if err == nil {
			// Pause between customers as well; the backoff doubles as rate
			// limiting against the relay.
			w.d.Sleep(retry.Backoff(attempt))
			return SendResult{Customer: c, Status: StatusSuccess, Response: resp}
		}

		attempt++
		w.d.Log.Warn("send attempt failed", "email", c.Email, "attempt", attempt, "err", err)
		if attempt < retry.MaxRetries {
			w.d.Sleep(retry.Backoff(attempt))
		} else {
			return SendResult{Customer: c, Status: StatusFailed, Err: fmt.Sprintf("Failed after %d attempts: %v", retry.MaxRetries, err)}
		}
	}
	return SendResult{Customer: c, Status: StatusFailed, Err: fmt.Sprintf("Failed after %d attempts", retry.MaxRetries)}
}

func contentPrompt(c Customer, companyName, productDescription, senderName string) string {
	return fmt.Sprintf(`Generate a marketing email with the following details:
- Recipient's Name: %s
- Recipient's Professional Background: %s
- Company Name: %s
- Product/Service Description: %s
- Sender's Name: %s

The email should:
1. Have an engaging subject line
2. Be personalized based on the recipient's background
3. Highlight how our solutions address their specific needs
4. Include a clear call to action
5. Maintain a professional yet friendly tone

Format the email with proper structure including subject line, greeting, body, and signature.`,
		c.Name, c.Description, companyName, productDescription, senderName)
}

func fallbackContent(c Customer, companyName, productDescription, senderName string) string {
	return fmt.Sprintf(`Subject: Discover %s's innovative solutions

Dear %s,

I hope this email finds you well. Given your background in %s, I thought you might be interested in learning about %s's latest offerings.

%s

I'd love to discuss how our solutions can benefit your work. Would you be available for a brief conversation?

Best regards,
%s`, companyName, c.Name, c.Description, companyName, productDescription, senderName)
}
