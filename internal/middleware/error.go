package middleware

import (
	"errors"
	"net/http"

	"quiz-builder/internal/domain"
	"quiz-builder/internal/dto"
	"quiz-builder/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler is a centralized error handling middleware. Every error that
// leaves a handler, including recovered panics, ends here and is turned into
// a {error, detail?} body.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		logger := logger.Get().With(zap.String("request_id", RequestIDFrom(c)))

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			logger.Warn("Validation errors occurred",
				zap.String("path", c.Path()),
				zap.Strings("fields", validationErrs.Fields()),
			)
			return c.Status(http.StatusBadRequest).JSON(dto.ErrorResponse{
				Error:  domain.MsgMissingFields,
				Fields: validationErrs.Fields(),
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)

			logger.Error("Domain error occurred",
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
				zap.Error(domainErr.Err),
			)

			response := dto.ErrorResponse{Error: domainErr.Message}
			if exposeDetail(domainErr.Code) {
				response.Detail = domainErr.Detail()
			}
			return c.Status(statusCode).JSON(response)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			logger.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{
				Error: fiberErr.Message,
			})
		}

		logger.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return c.Status(http.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: domain.MsgInternal,
		})
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeInvalidInput, domain.CodeMissingField:
		return http.StatusBadRequest
	case domain.CodeLLMServiceError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// exposeDetail limits which causes reach the client. Generator errors carry
// the provider's message, which is what a caller needs to act on.
func exposeDetail(code domain.ErrorCode) bool {
	return code == domain.CodeLLMServiceError || code == domain.CodeInvalidInput
}
