package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/harlow-hs/paydash/internal/api"
	"github.com/harlow-hs/paydash/internal/common"
	"github.com/harlow-hs/paydash/internal/session"
)

// initSession constructs the session and hydrates it from disk.
func initSession() (*session.Session, error) {
	sess, err := session.New(viper.GetString("session.path"))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := sess.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return sess, nil
}

// initClient builds the API client from configuration.
func initClient(sess *session.Session) (*api.Client, error) {
	baseURL := viper.GetString("api.base_url")
	if baseURL == "" {
		return nil, common.NewUserError(
			"API base URL is not configured; set api.base_url in the config file, PAYDASH_API_BASE_URL, or --api-url",
			common.ErrMissingConfig,
		)
	}

	return api.NewClient(api.Config{
		BaseURL: baseURL,
		Timeout: viper.GetDuration("api.timeout"),
	}, sess)
}

// initAuthenticated builds both, requiring a signed-in session.
func initAuthenticated() (*api.Client, *session.Session, error) {
	sess, err := initSession()
	if err != nil {
		return nil, nil, err
	}

	if !sess.Authenticated() {
		return nil, nil, common.NewUserError("Not logged in; run 'paydash login' first", common.ErrNotLoggedIn)
	}

	client, err := initClient(sess)
	if err != nil {
		return nil, nil, err
	}

	return client, sess, nil
}
