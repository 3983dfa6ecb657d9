package handlers

import (
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SaorsaGrowth/saorsa-site-backend/config"
	apperrors "github.com/SaorsaGrowth/saorsa-site-backend/errors"
	"github.com/SaorsaGrowth/saorsa-site-backend/logger"
	"github.com/SaorsaGrowth/saorsa-site-backend/pkg/hubspot"
	"github.com/SaorsaGrowth/saorsa-site-backend/types"
	"github.com/gin-gonic/gin"
)

const (
	maxMessageLength = 4000

	contactRetryMessage  = "We could not send your message right now. Please try again later."
	insightsRetryMessage = "We could not send your request right now. Please try again later."
)

// emailPattern is a deliberately loose local@domain.tld shape check. Real
// validation happens when HubSpot processes the submission.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RelayHandler validates form submissions and forwards them to the HubSpot
// forms API. Nothing is persisted; each submission is a single forward
// attempt with no retry.
type RelayHandler struct {
	hubspot hubspot.ClientInterface
	cfg     *config.HubSpotConfig
}

// NewRelayHandler creates a new RelayHandler.
func NewRelayHandler(client hubspot.ClientInterface, cfg *config.HubSpotConfig) *RelayHandler {
	return &RelayHandler{hubspot: client, cfg: cfg}
}

// SubmitContact godoc
// @Summary      Relay a contact-form submission
// @Description  Validates the contact form and forwards it to the forms API
// @Tags         relay
// @Accept       json
// @Produce      json
// @Param        body  body      types.ContactSubmission  true  "Contact payload"
// @Success      200   {object}  types.RelayResponse
// @Failure      400   {object}  types.RelayResponse
// @Failure      502   {object}  types.RelayResponse
// @Router       /relay/contact [post]
func (h *RelayHandler) SubmitContact(c *gin.Context) {
	log := logger.GetLogger()

	var req types.ContactSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.MalformedPayload())
		return
	}

	// Honeypot: bots fill the hidden website field. Pretend success so they
	// don't learn the submission was discarded.
	if strings.TrimSpace(req.Website) != "" {
		c.JSON(http.StatusOK, types.RelayResponse{Ok: true})
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !emailPattern.MatchString(email) {
		_ = c.Error(apperrors.InvalidEmail())
		return
	}

	message := strings.TrimSpace(req.Message)
	if message != "" && utf8.RuneCountInString(message) > maxMessageLength {
		_ = c.Error(apperrors.MessageTooLong(maxMessageLength))
		return
	}

	// Accept both camelCase and snake_case to support mixed client payloads.
	firstName := firstNonEmpty(req.FirstName, req.FirstNameSnake)
	lastName := firstNonEmpty(req.LastName, req.LastNameSnake)

	fields := buildFields([]hubspot.Field{
		{Name: "firstname", Value: firstName},
		{Name: "lastname", Value: lastName},
		{Name: "email", Value: email},
		{Name: "company", Value: strings.TrimSpace(req.Company)},
		{Name: "phone", Value: strings.TrimSpace(req.Phone)},
		{Name: "message", Value: message},
	})

	optInRaw := req.SubscribeToInsights
	if optInRaw == nil {
		optInRaw = req.InsightsOptIn
	}
	if coerceOptIn(optInRaw) {
		fields = append(fields, hubspot.Field{Name: "insights_opt_in", Value: "true"})
	}

	payload := &hubspot.SubmissionPayload{
		SubmittedAt: time.Now().UnixMilli(),
		Fields:      fields,
		Context:     buildContext(req.PageURI, req.PageName, req.HUTK),
	}

	if err := h.hubspot.Submit(c.Request.Context(), h.cfg.ContactFormGUID, payload); err != nil {
		_ = c.Error(apperrors.UpstreamDeliveryFailed(err, contactRetryMessage))
		return
	}

	log.Infow("Contact submission forwarded", "email", logger.MaskEmail(email))
	c.JSON(http.StatusOK, types.RelayResponse{Ok: true})
}

// SubmitInsights godoc
// @Summary      Relay a newsletter signup
// @Description  Validates the signup email and forwards it to the forms API
// @Tags         relay
// @Accept       json
// @Produce      json
// @Param        body  body      types.InsightsSubmission  true  "Signup payload"
// @Success      200   {object}  types.RelayResponse
// @Failure      400   {object}  types.RelayResponse
// @Failure      502   {object}  types.RelayResponse
// @Router       /relay/insights-signup [post]
func (h *RelayHandler) SubmitInsights(c *gin.Context) {
	log := logger.GetLogger()

	var req types.InsightsSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.MalformedPayload())
		return
	}

	if strings.TrimSpace(req.Website) != "" {
		c.JSON(http.StatusOK, types.RelayResponse{Ok: true})
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !emailPattern.MatchString(email) {
		_ = c.Error(apperrors.InvalidEmail())
		return
	}

	payload := &hubspot.SubmissionPayload{
		SubmittedAt: time.Now().UnixMilli(),
		Fields:      []hubspot.Field{{Name: "email", Value: email}},
		Context:     buildContext(req.PageURI, req.PageName, req.HUTK),
	}

	if err := h.hubspot.Submit(c.Request.Context(), h.cfg.InsightsFormGUID, payload); err != nil {
		_ = c.Error(apperrors.UpstreamDeliveryFailed(err, insightsRetryMessage))
		return
	}

	log.Infow("Insights signup forwarded", "email", logger.MaskEmail(email))
	c.JSON(http.StatusOK, types.RelayResponse{Ok: true})
}

// MethodNotAllowed answers any verb other than POST on the relay endpoints.
// It is installed engine-wide, outside the relay group, so it renders the
// envelope itself instead of going through c.Error.
func MethodNotAllowed(c *gin.Context) {
	err := apperrors.MethodNotAllowed()
	c.JSON(err.HTTPStatus, types.RelayResponse{Ok: false, Message: err.Message})
}

// buildFields drops fields whose trimmed value is empty, preserving order.
func buildFields(candidates []hubspot.Field) []hubspot.Field {
	fields := make([]hubspot.Field, 0, len(candidates))
	for _, f := range candidates {
		if f.Value != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// buildContext returns attribution metadata, or nil when every part is empty
// so the context key is left out of the forwarded payload entirely.
func buildContext(pageURI, pageName, hutk string) *hubspot.Context {
	pageURI = strings.TrimSpace(pageURI)
	pageName = strings.TrimSpace(pageName)
	hutk = strings.TrimSpace(hutk)

	if pageURI == "" && pageName == "" && hutk == "" {
		return nil
	}
	return &hubspot.Context{PageURI: pageURI, PageName: pageName, HUTK: hutk}
}

// coerceOptIn folds the mixed bool-or-string opt-in flag into a bool.
// Only true, "true" and "on" count as opting in.
func coerceOptIn(raw interface{}) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "on"
	default:
		return false
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
