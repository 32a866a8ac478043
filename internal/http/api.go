package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"investor-portal/internal/domain"
	"investor-portal/internal/repository"
	"investor-portal/internal/service"
	"investor-portal/internal/token"
)

const userIDKey = "user_id"

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth    service.AuthService
	contact service.ContactService
	leads   service.LeadService
	export  service.ExportService
	issuer  *token.Issuer
}

func NewHandler(auth service.AuthService, contact service.ContactService, leads service.LeadService, export service.ExportService, issuer *token.Issuer) *Handler {
	return &Handler{
		auth:    auth,
		contact: contact,
		leads:   leads,
		export:  export,
		issuer:  issuer,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)
		api.POST("/contact", h.submitContact)
		api.POST("/leads", h.registerLead)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		authed := api.Group("", requireAuth(h.issuer))
		{
			authed.GET("/me", h.me)
			authed.GET("/admin/leads", h.listLeads)
			authed.GET("/admin/leads/exports", h.listExports)
			authed.POST("/admin/leads/export", h.exportLeads)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requireAuth(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		userID, err := issuer.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Company   string `json:"company"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company,omitempty"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Phone:     req.Phone,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{User: userToResponse(result.User), Token: result.Token})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{User: userToResponse(result.User), Token: result.Token})
}

func (h *Handler) me(c *gin.Context) {
	userID := c.GetInt64(userIDKey)

	user, err := h.auth.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userToResponse(user)})
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

func (h *Handler) submitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inquiry, err := h.contact.SubmitInquiry(c.Request.Context(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": inquiry.ID})
}

type leadRequest struct {
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	Company         string `json:"company"`
	JobTitle        string `json:"jobTitle"`
	Country         string `json:"country" binding:"required"`
	InvestmentRange string `json:"investmentRange"`
	Interests       string `json:"interests"`
	HowHeard        string `json:"howHeard"`
}

func (h *Handler) registerLead(c *gin.Context) {
	var req leadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead, err := h.leads.RegisterLead(c.Request.Context(), service.LeadInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Company:         req.Company,
		JobTitle:        req.JobTitle,
		Country:         req.Country,
		InvestmentRange: req.InvestmentRange,
		Interests:       req.Interests,
		HowHeard:        req.HowHeard,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": lead.ID})
}

type leadResponse struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Company         string `json:"company,omitempty"`
	JobTitle        string `json:"jobTitle,omitempty"`
	Country         string `json:"country"`
	InvestmentRange string `json:"investmentRange,omitempty"`
	Interests       string `json:"interests,omitempty"`
	HowHeard        string `json:"howHeard,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

func (h *Handler) listLeads(c *gin.Context) {
	leads, err := h.leads.ListLeads(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]leadResponse, len(leads))
	for i, lead := range leads {
		resp[i] = leadToResponse(lead)
	}
	c.JSON(http.StatusOK, gin.H{"leads": resp})
}

func (h *Handler) exportLeads(c *gin.Context) {
	if h.export == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage service not configured"})
		return
	}

	result, err := h.export.ExportLeads(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location":    result.Location,
		"downloadUrl": result.DownloadURL,
		"count":       result.Count,
	})
}

type exportObjectResponse struct {
	Key          string `json:"key"`
	Size         int64  `json:"size"`
	LastModified string `json:"lastModified,omitempty"`
}

func (h *Handler) listExports(c *gin.Context) {
	if h.export == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage service not configured"})
		return
	}

	exports, err := h.export.ListExports(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]exportObjectResponse, len(exports))
	for i, obj := range exports {
		resp[i] = exportObjectResponse{Key: obj.Key, Size: obj.Size}
		if obj.LastModified != nil {
			resp[i].LastModified = obj.LastModified.UTC().Format(time.RFC3339)
		}
	}
	c.JSON(http.StatusOK, gin.H{"exports": resp})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "fields": validation.Fields})
	case errors.Is(err, service.ErrDuplicateAccount), errors.Is(err, service.ErrDuplicateLead):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrStorageNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func userToResponse(user *domain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Company:   user.Company,
	}
}

func leadToResponse(lead domain.Lead) leadResponse {
	return leadResponse{
		ID:              lead.ID,
		FirstName:       lead.FirstName,
		LastName:        lead.LastName,
		Email:           lead.Email,
		Phone:           lead.Phone,
		Company:         lead.Company,
		JobTitle:        lead.JobTitle,
		Country:         lead.Country,
		InvestmentRange: lead.InvestmentRange,
		Interests:       lead.Interests,
		HowHeard:        lead.HowHeard,
		CreatedAt:       lead.CreatedAt.UTC().Format(time.RFC3339),
	}
}
