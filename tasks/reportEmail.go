package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"workforce-analyzer-backend/db/models"
	"workforce-analyzer-backend/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReportEmail = "report:email"

// ReportEmailPayload carries everything the worker needs to deliver an
// error-report email for a finished run.
type ReportEmailPayload struct {
	Recipient         string `json:"recipient"`
	Subject           string `json:"subject"`
	Message           string `json:"message"`
	DownloadLink      string `json:"download_link"`
	AnalysisTimestamp string `json:"analysis_timestamp"`
}

// NewReportEmailTask builds the asynq task for a report email.
func NewReportEmailTask(payload ReportEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding report email payload: %w", err)
	}
	return asynq.NewTask(TypeReportEmail, data, asynq.MaxRetry(3), asynq.Timeout(time.Minute)), nil
}

// EmailLogger persists a record of each sent report email.
type EmailLogger interface {
	LogEmailSent(emailLog *models.EmailLog) error
}

// ReportEmailProcessor delivers queued report emails and logs them.
type ReportEmailProcessor struct {
	logger   *zap.Logger
	emailLog EmailLogger
}

func NewReportEmailProcessor(logger *zap.Logger, emailLog EmailLogger) *ReportEmailProcessor {
	return &ReportEmailProcessor{logger: logger, emailLog: emailLog}
}

func (p *ReportEmailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload ReportEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decoding report email payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := utils.SendEmail(payload.Recipient, payload.Message, payload.Subject, payload.DownloadLink); err != nil {
		return fmt.Errorf("sending report email: %w", err)
	}

	active := true
	emailLog := &models.EmailLog{
		ID:             uuid.New(),
		Recipient:      payload.Recipient,
		Subject:        payload.Subject,
		Message:        payload.Message,
		SentAt:         time.Now(),
		Active:         &active,
		AttachmentPath: payload.DownloadLink,
	}
	if err := p.emailLog.LogEmailSent(emailLog); err != nil {
		// The email went out; a failed log entry is not worth a retry that
		// would resend it.
		p.logger.Warn("Failed to log report email", zap.Error(err))
	}

	p.logger.Info("Report email delivered",
		zap.String("recipient", payload.Recipient),
		zap.String("analysis_timestamp", payload.AnalysisTimestamp),
	)
	return nil
}

// StartWorker runs the asynq server for background report emails.
func StartWorker(redisAddr string, logger *zap.Logger, emailLog EmailLogger) *asynq.Server {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.Handle(TypeReportEmail, NewReportEmailProcessor(logger, emailLog))

	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Error("Asynq worker stopped", zap.Error(err))
		}
	}()

	return srv
}
