package nativemsg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/valpere/honyaku/internal"
)

// Executor answers a translation request.
type Executor interface {
	Execute(ctx context.Context, req internal.TranslationRequest) internal.TranslationResponse
}

// Host serves native-messaging requests read from one stream and answers on
// another.
type Host struct {
	exec   Executor
	logger zerolog.Logger

	mu sync.Mutex
	w  io.Writer
}

func NewHost(exec Executor, logger zerolog.Logger) *Host {
	return &Host{exec: exec, logger: logger}
}

// frame is one read result handed from the reader goroutine to Serve.
type frame struct {
	payload []byte
	err     error
}

// Serve reads requests from r until EOF and writes responses to w. Requests
// are handled concurrently, so responses may arrive out of order; callers
// correlate them with the request id. Serve also stops reading when ctx is
// done, even while blocked on r. Either way it returns after every in-flight
// request has been answered.
func (h *Host) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	h.w = w

	var wg sync.WaitGroup
	defer wg.Wait()

	frames := make(chan frame)
	go func() {
		for {
			payload, err := ReadMessage(r)
			select {
			case frames <- frame{payload: payload, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		var f frame
		select {
		case <-ctx.Done():
			h.logger.Info().Msg("host interrupted, waiting for in-flight requests")
			return nil
		case f = <-frames:
		}

		payload, err := f.payload, f.err
		if errors.Is(err, io.EOF) {
			h.logger.Debug().Msg("stdin closed, host stopping")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var req internal.TranslationRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			h.logger.Warn().Err(err).Msg("malformed message")
			h.reply(internal.Failed("invalid message: " + err.Error()))
			continue
		}

		if req.Type != internal.MessageTypeRequestTranslation {
			h.logger.Warn().Str("type", req.Type).Msg("unsupported message type")
			resp := internal.Failed("unsupported message type: " + req.Type)
			resp.ID = req.ID
			h.reply(resp)
			continue
		}

		wg.Add(1)
		go func(req internal.TranslationRequest) {
			defer wg.Done()
			h.reply(h.exec.Execute(ctx, req))
		}(req)
	}
}

func (h *Host) reply(resp internal.TranslationResponse) {
	h.mu.Lock()
	defer h.mu.Unlock()

	err := WriteMessage(h.w, resp)
	if errors.Is(err, ErrMessageTooLarge) {
		h.logger.Error().Err(err).Str("id", resp.ID).Msg("response dropped")
		fallback := internal.Failed("翻訳結果が大きすぎて送信できません。")
		fallback.ID = resp.ID
		err = WriteMessage(h.w, fallback)
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to write response")
	}
}
