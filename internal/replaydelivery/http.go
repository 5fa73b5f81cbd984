// Package replaydelivery manages HTTP delivery of replays.
package replaydelivery

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/payments-engine/internal/csvdelivery"
	"github.com/go-petr/payments-engine/internal/domain"
	"github.com/go-petr/payments-engine/pkg/errorspkg"
	"github.com/go-petr/payments-engine/pkg/web"
)

// Report formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ErrBodyTooLarge indicates an upload above the configured limit.
var ErrBodyTooLarge = errors.New("request body too large")

// Service provides service layer interface needed by replay delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package replaydelivery
type Service interface {
	Replay(ctx context.Context, r io.Reader) ([]domain.AccountState, error)
}

// Handler facilitates replay delivery layer logic.
type Handler struct {
	service  Service
	maxBytes int64
}

// NewHandler returns replay handler accepting bodies up to maxBytes.
func NewHandler(s Service, maxBytes int64) Handler {
	return Handler{service: s, maxBytes: maxBytes}
}

type data struct {
	Accounts []domain.AccountState `json:"accounts"`
}

type response struct {
	Data data `json:"data"`
}

type replayRequest struct {
	Format string `form:"format" binding:"omitempty,reportformat"`
}

// Replay handles http request to replay a CSV transaction stream sent as the
// request body. Each request is replayed into its own ledger.
func (h *Handler) Replay(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req replayRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	body := http.MaxBytesReader(gctx.Writer, gctx.Request.Body, h.maxBytes)

	states, err := h.service.Replay(ctx, body)
	if err != nil {
		var maxErr *http.MaxBytesError

		switch {
		case errors.As(err, &maxErr):
			gctx.JSON(http.StatusRequestEntityTooLarge, web.Error(ErrBodyTooLarge))
		case errors.Is(err, domain.ErrMalformedInput):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	if req.Format == FormatCSV {
		gctx.Header("Content-Type", "text/csv; charset=utf-8")
		gctx.Status(http.StatusOK)

		if err := csvdelivery.WriteAccounts(gctx.Writer, states); err != nil {
			l.Error().Err(err).Send()
		}

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{Accounts: states}})
}
