package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"512b.it/drawday/src/game"
	"512b.it/drawday/src/models"
	"512b.it/drawday/src/targets"
)

type Server struct {
	game    *game.Service
	logger  *zap.Logger
	metrics *Metrics
}

func NewServer(svc *game.Service, logger *zap.Logger, metrics *Metrics) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		game:    svc,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *Server) HandleTarget(c *gin.Context) {
	var req models.TargetRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.metrics.targetRequest("bad_request")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid query"})
		return
	}

	var date *time.Time
	if req.Date != "" {
		d, err := targets.ParseDate(req.Date)
		if err != nil {
			s.metrics.targetRequest("bad_request")
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		date = &d
	}

	response, err := s.game.Target(date)
	if err != nil {
		s.metrics.targetRequest("not_found")
		c.JSON(statusFor(err), models.ErrorResponse{Error: err.Error()})
		return
	}

	s.metrics.targetRequest("ok")
	c.JSON(http.StatusOK, response)
}

func (s *Server) HandleSubmit(c *gin.Context) {
	start := time.Now()

	var req models.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, start, &game.Error{Kind: game.InternalError, Msg: "invalid request body", Err: err})
		return
	}

	attempt, err := game.ParseAttempt(req.Attempt)
	if err != nil {
		s.fail(c, start, err)
		return
	}

	response, err := s.game.Submit(c.Request.Context(), game.Submission{
		ImageBase64: req.ImageBase64,
		Attempt:     attempt,
	})
	if err != nil {
		s.fail(c, start, err)
		return
	}

	outcome := "incorrect"
	if response.Success {
		outcome = "correct"
	}
	s.metrics.submission(outcome, time.Since(start))
	c.JSON(http.StatusOK, response)
}

func (s *Server) HandlePreflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (s *Server) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) fail(c *gin.Context, start time.Time, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Error in /submit", zap.Error(err), zap.String("request_id", requestID(c)))
	}
	s.metrics.submission(game.KindOf(err).String(), time.Since(start))
	c.JSON(status, models.FailureResponse{Success: false, Message: err.Error()})
}

func statusFor(err error) int {
	var gerr *game.Error
	if !errors.As(err, &gerr) {
		return http.StatusInternalServerError
	}
	switch gerr.Kind {
	case game.InvalidRequest:
		return http.StatusBadRequest
	case game.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
