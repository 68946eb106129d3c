package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fadilmartias/resume-critique/internal/critique"
	"github.com/fadilmartias/resume-critique/internal/dto"
	"github.com/fadilmartias/resume-critique/internal/repository"
	"github.com/fadilmartias/resume-critique/internal/response"
	"github.com/fadilmartias/resume-critique/internal/usecase"
	"github.com/fadilmartias/resume-critique/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CritiqueService interface {
	Submit(ctx context.Context, in usecase.UploadInput) (*dto.CritiqueDTO, error)
	Critique(ctx context.Context, resumeText, filename string) (*critique.Record, error)
	GetCritique(ctx context.Context, id uuid.UUID) (*dto.CritiqueDTO, error)
	History(ctx context.Context, page, pageSize int) ([]dto.HistoryItemDTO, *response.Pagination, error)
}

type Options struct {
	AppName     string
	UploadDir   string
	MaxFileSize int64
}

var textExtensions = map[string]bool{".txt": true, ".text": true, ".md": true}

type CritiqueHandler struct {
	uc     CritiqueService
	res    *util.Responder
	opts   Options
	logger *zap.Logger
}

func NewCritiqueHandler(uc CritiqueService, res *util.Responder, opts Options, log *zap.Logger) *CritiqueHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CritiqueHandler{uc: uc, res: res, opts: opts, logger: log.Named("handler")}
}

func (h *CritiqueHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.Index)
	app.Post("/upload-resume", h.UploadResume)
	app.Post("/critique", h.Critique)
	app.Get("/get-critique/:id", h.GetCritique)
	app.Get("/history", h.History)
}

func (h *CritiqueHandler) Index(c *fiber.Ctx) error {
	return h.res.SuccessResponse(c, util.SuccessResponseFormat{
		Message: h.opts.AppName,
		Data: fiber.Map{
			"endpoints": []string{
				"POST /upload-resume",
				"POST /critique",
				"GET /get-critique/:id",
				"GET /history",
				"GET /livez",
				"GET /readyz",
				"GET /metrics",
			},
		},
	})
}

func (h *CritiqueHandler) UploadResume(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return h.res.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "resume file is required",
		}, err)
	}

	if h.opts.MaxFileSize > 0 && file.Size > h.opts.MaxFileSize {
		return h.res.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusRequestEntityTooLarge,
			Message: fmt.Sprintf("resume file is too large (max %d bytes)", h.opts.MaxFileSize),
		}, nil)
	}

	filename := filepath.Base(file.Filename)
	mimeType := file.Header.Get(fiber.HeaderContentType)
	if !isPlainText(filename, mimeType) {
		return h.res.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnsupportedMediaType,
			Message: "unsupported resume file type, upload plain text",
		}, nil)
	}

	content, err := readUpload(file)
	if err != nil {
		return h.res.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read resume file",
		}, err)
	}
	if !utf8.ValidString(content) {
		return h.res.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnsupportedMediaType,
			Message: "resume file is not valid UTF-8 text",
		}, nil)
	}

	savePath := filepath.Join(h.opts.UploadDir, uuid.NewString()+"-"+filename)
	if err := c.SaveFile(file, savePath); err != nil {
		return h.res.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot save resume file",
		}, err)
	}

	h.logger.Info("resume uploaded",
		zap.String("filename", filename),
		zap.Int64("size", file.Size),
		zap.String("path", savePath),
	)

	result, err := h.uc.Submit(c.UserContext(), usecase.UploadInput{
		Filename: filename,
		Content:  content,
		FilePath: savePath,
		FileSize: file.Size,
		MimeType: mimeType,
	})
	if err != nil {
		return h.res.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to critique resume",
		}, err)
	}

	return h.res.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success critique resume",
		Data:    dto.UploadResultDTO{CritiqueID: result.ID, Critique: result},
	})
}

type critiqueRequest struct {
	ResumeText *string `json:"resume_text"`
	Filename   *string `json:"filename"`
}

// Critique runs the pipeline on inline text and returns the bare record.
func (h *CritiqueHandler) Critique(c *fiber.Ctx) error {
	var req critiqueRequest
	if err := c.BodyParser(&req); err != nil {
		return h.res.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	fields := map[string]string{}
	if req.ResumeText == nil {
		fields["resume_text"] = "required"
	}
	if req.Filename == nil {
		fields["filename"] = "required"
	}
	if len(fields) > 0 {
		return h.res.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "invalid request body",
		}, util.NewFormError("missing fields", fields))
	}

	record, err := h.uc.Critique(c.UserContext(), *req.ResumeText, *req.Filename)
	if err != nil {
		return h.res.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to critique resume",
		}, err)
	}
	return c.JSON(record)
}

func (h *CritiqueHandler) GetCritique(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.res.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid critique id",
		}, err)
	}

	result, err := h.uc.GetCritique(c.UserContext(), id)
	if err != nil {
		message := "failed to get critique"
		if errors.Is(err, repository.ErrNotFound) {
			message = "critique not found"
		}
		return h.res.ErrorResponse(c, util.ErrorResponseFormat{
			Message: message,
		}, err)
	}
	return h.res.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get critique",
		Data:    result,
	})
}

func (h *CritiqueHandler) History(c *fiber.Ctx) error {
	items, page, err := h.uc.History(c.UserContext(), c.QueryInt("page", 1), c.QueryInt("page_size", response.DefaultPageSize))
	if err != nil {
		return h.res.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load history",
		}, err)
	}
	return h.res.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get history",
		Data:       items,
		Pagination: page,
	})
}

func isPlainText(filename, contentType string) bool {
	if textExtensions[strings.ToLower(filepath.Ext(filename))] {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "text/plain"
}

func readUpload(file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
