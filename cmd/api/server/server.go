package server

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tributary-dev/tributary/campaign"
	"github.com/tributary-dev/tributary/capability"
	"github.com/tributary-dev/tributary/components/email"
	_ "github.com/tributary-dev/tributary/components/search"
	"github.com/tributary-dev/tributary/components/tabular"
	"github.com/tributary-dev/tributary/components/textgen"
	_ "github.com/tributary-dev/tributary/components/textinput"
	_ "github.com/tributary-dev/tributary/components/webscrape"
	"github.com/tributary-dev/tributary/config"
	"github.com/tributary-dev/tributary/engine"
	"github.com/tributary-dev/tributary/model"
)

// maxUpload caps campaign CSV uploads at 10 MiB.
const maxUpload = 10 << 20

// Server carries the process-wide state shared across requests: provider
// settings and the per-company campaign result cache.
type Server struct {
	cfg   config.Config
	log   *slog.Logger
	cache *campaign.Cache
}

func New(cfg config.Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{cfg: cfg, log: log, cache: campaign.NewCache()}
}

type workflowResponse struct {
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

type campaignResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Response string `json:"response,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().Unix()})
}

// handleExecuteWorkflow runs an arbitrary node/edge graph. Scheduling errors
// come back in the error field with a 200, matching what graph-editor clients
// expect.
func (s *Server) handleExecuteWorkflow(c *gin.Context) {
	var wf model.Workflow
	if err := c.ShouldBindJSON(&wf); err != nil {
		c.JSON(http.StatusBadRequest, workflowResponse{Error: "Invalid JSON: " + err.Error()})
		return
	}

	execID := uuid.NewString()
	log := s.log.With("execution", execID)
	log.Info("executing workflow", "nodes", len(wf.Nodes), "edges", len(wf.Edges))

	exec := engine.NewExecutor(s.cfg.Settings())
	result, err := engine.New(exec, log).Run(c.Request.Context(), wf)
	if err != nil {
		log.Error("workflow failed", "err", err)
		c.JSON(http.StatusOK, workflowResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, workflowResponse{Response: result})
}

// handleCampaign runs the CSV-to-personalized-email campaign from a multipart
// form upload.
func (s *Server) handleCampaign(c *gin.Context) {
	sessionID := c.PostForm("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	senderEmail := c.PostForm("sender_email")
	senderName := c.PostForm("sender_name")
	senderPasskey := c.PostForm("sender_passkey")
	companyName := c.PostForm("company_name")
	productDescription := c.PostForm("product_description")

	useCached := formBool(c, "use_cached_results", true)
	maxRetries := formInt(c, "max_retries", 3)
	retryDelay := formInt(c, "retry_delay", 5)

	fileContent, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, campaignResponse{Success: false, Message: "Failed to read uploaded file: " + err.Error()})
		return
	}

	log := s.log.With("session", sessionID)
	settings := s.cfg.Settings()

	csvAgent, _ := tabular.New(capability.Config{Settings: settings})
	wf := campaign.New(
		campaign.Params{
			SessionID:     sessionID,
			FileContent:   fileContent,
			SenderEmail:   senderEmail,
			SenderName:    senderName,
			SenderPasskey: senderPasskey,
			Model:         s.cfg.DefaultModel,
		},
		campaign.Deps{
			NewTextAgent: func(modelName, instructions string) (capability.Capability, error) {
				return textgen.New(capability.Config{Model: modelName, Instructions: instructions, Settings: settings})
			},
			NewEmailAgent: func(receiver string) (campaign.EmailAgent, error) {
				return email.NewSender(settings, senderEmail, senderName, senderPasskey, receiver), nil
			},
			CSVAgent: csvAgent,
			Cache:    s.cache,
			Log:      log,
		},
	)

	opts := campaign.Options{
		UseCachedResults: useCached,
		Retry:            engine.RetryPolicy{MaxRetries: maxRetries, Delay: time.Duration(retryDelay) * time.Second},
	}
	summary, err := wf.Run(c.Request.Context(), companyName, productDescription, opts)
	if err != nil {
		log.Error("campaign failed", "err", err)
		c.JSON(http.StatusOK, campaignResponse{Success: false, Message: "Workflow execution failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, campaignResponse{
		Success:  true,
		Message:  "Marketing campaign workflow completed",
		Response: summary,
	})
}

func readUpload(c *gin.Context) (string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		// The campaign can still run off the agent fallback path.
		return "", nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	b, err := io.ReadAll(io.LimitReader(f, maxUpload))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func formBool(c *gin.Context, key string, def bool) bool {
	v := c.PostForm(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func formInt(c *gin.Context, key string, def int) int {
	v := c.PostForm(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// NewRouter builds the Gin router with routes and middleware.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.Default()
	r.Use(gin.Recovery())
	// CORS
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", s.handleHealth)
	r.POST("/execute_dynamic_workflow", s.handleExecuteWorkflow)
	r.POST("/workflow_agent", s.handleCampaign)

	return r
}
