package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"dailyrewards/pkg/config"
	"dailyrewards/pkg/logger"
)

// ClientOption picks credentials: inline JSON first, then the key file,
// then application default credentials.
func ClientOption(cfg *config.Config) option.ClientOption {
	if cfg.FirebaseServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON))
	}
	if _, err := os.Stat(cfg.FirebaseServiceAccountPath); err == nil {
		logger.Info("Using Firebase service account file: %s", cfg.FirebaseServiceAccountPath)
		return option.WithCredentialsFile(cfg.FirebaseServiceAccountPath)
	}
	logger.Warn("No Firebase service account found, falling back to default credentials")
	return nil
}

// NewAuth initializes the Firebase app and returns its auth client.
func NewAuth(ctx context.Context, cfg *config.Config, opt option.ClientOption) (*auth.Client, error) {
	var opts []option.ClientOption
	if opt != nil {
		opts = append(opts, opt)
	}

	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth: %w", err)
	}
	return client, nil
}

func NewFirestore(ctx context.Context, cfg *config.Config, opt option.ClientOption) (*firestore.Client, error) {
	var opts []option.ClientOption
	if opt != nil {
		opts = append(opts, opt)
	}

	client, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firestore: %w", err)
	}
	return client, nil
}
