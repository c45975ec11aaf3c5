package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/log"
)

const reasonDismissed = "dismissed"

var errStreamingUnsupported = errors.New("streaming not supported")

// GetNotifications returns the notifications of the wallet, newest first
func (s *Server) GetNotifications(ctx context.Context, _ GetNotificationsRequestObject) (GetNotificationsResponseObject, error) {
	return GetNotifications200JSONResponse(s.notifications.List(ctx, walletFrom(ctx))), nil
}

// DeleteNotification dismisses a notification
func (s *Server) DeleteNotification(ctx context.Context, request DeleteNotificationRequestObject) (DeleteNotificationResponseObject, error) {
	removed, err := s.notifications.Remove(ctx, walletFrom(ctx), request.Id, reasonDismissed)
	if err != nil {
		status, body := serviceError(ctx, err)
		return DeleteNotificationdefaultJSONResponse{Body: body, StatusCode: status}, nil
	}
	if !removed {
		return DeleteNotificationdefaultJSONResponse{Body: GenericErrorMessage{Message: "notification not found"}, StatusCode: http.StatusNotFound}, nil
	}
	return DeleteNotification200JSONResponse{}, nil
}

// NotificationStream keeps the connection open and writes the events of the wallet as server sent events.
// The first event is always connected. A comment is written every keepalive period.
func (s *Server) NotificationStream(ctx context.Context, _ NotificationStreamRequestObject) (NotificationStreamResponseObject, error) {
	return notificationStream{ctx: ctx, server: s, walletID: walletFrom(ctx)}, nil
}

// notificationStream is the response of NotificationStream. The subscription lives as long as the
// request context, so it is opened when the response is written.
type notificationStream struct {
	ctx      context.Context
	server   *Server
	walletID string
}

func (st notificationStream) VisitNotificationStreamResponse(w http.ResponseWriter) error {
	ctx := st.ctx
	flusher, ok := w.(http.Flusher)
	if !ok {
		return errStreamingUnsupported
	}

	sub := st.server.broadcaster.Subscribe(st.walletID)
	st.server.metrics.StreamOpened()
	defer func() {
		st.server.broadcaster.Unsubscribe(st.walletID, sub)
		st.server.metrics.StreamClosed()
		log.Debug(ctx, "notification stream closed", "subscriber", sub.ID())
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	connected := domain.Event{
		Type:      domain.EventConnected,
		Data:      map[string]string{"subscriber": sub.ID()},
		Timestamp: time.Now().UTC(),
	}
	if err := writeEvent(w, connected); err != nil {
		return nil
	}
	flusher.Flush()
	log.Debug(ctx, "notification stream opened", "subscriber", sub.ID())

	keepalive := time.NewTicker(st.server.cfg.Broadcast.Keepalive)
	defer keepalive.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if err := writeEvent(w, event); err != nil {
				log.Debug(ctx, "writing event", "err", err)
				return nil
			}
			flusher.Flush()
		case <-keepalive.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return nil
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w io.Writer, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
