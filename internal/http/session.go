package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/sync/singleflight"

	"github.com/mediaforge-io/adapi-client/internal/constants"
	"github.com/mediaforge-io/adapi-client/pkg/adapi"
)

// session owns the credentials behind the shared cookie jar. The login
// itself has no state to store here: on success the transport persists the
// session cookie in the jar.
type session struct {
	email    string
	password string
	client   *Client
	group    singleflight.Group
}

func newSession(client *Client, creds Credentials) *session {
	return &session{
		email:    creds.Email,
		password: creds.Password,
		client:   client,
	}
}

// authenticate issues one login call no matter how many callers arrive
// while it is in flight; all of them receive the same outcome. The
// in-flight cell is cleared when the call resolves, so a later caller
// re-authenticates fresh.
func (s *session) authenticate(ctx context.Context) error {
	_, err, _ := s.group.Do("login", func() (interface{}, error) {
		return nil, s.login(ctx)
	})

	return err
}

func (s *session) login(ctx context.Context) error {
	body := map[string]interface{}{
		"email":          s.email,
		"password":       s.password,
		"keep_logged_in": true,
	}

	resp, err := s.client.send(ctx, &Request{
		Method: http.MethodPost,
		Path:   constants.AuthPath,
		Body:   body,
	})
	if err != nil {
		// send never embeds the transport response in its errors, so
		// nothing sensitive propagates from here.
		return fmt.Errorf("authentication request: %w", err)
	}

	var env adapi.Envelope

	envOK := len(resp.Body) > 0 && json.Unmarshal(resp.Body, &env) == nil

	if resp.StatusCode >= http.StatusBadRequest || !envOK || !env.Success {
		detail := adapi.ErrorDetail{Message: http.StatusText(resp.StatusCode)}
		if envOK && env.Error != nil {
			detail = *env.Error
		}

		return &adapi.AuthError{Detail: detail}
	}

	return nil
}
