// Package firebase shares one Firebase app between Firestore, Auth and Cloud
// Messaging. The app is only built when a component asks for it, so local
// setups without credentials never touch Google APIs.
package firebase

import (
	"context"
	"sync"

	"studio/config"
	"studio/internal/errors"

	firebasesdk "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

type AppProvider struct {
	cfg *config.FirebaseConfig

	once sync.Once
	app  *firebasesdk.App
	err  error
}

func NewAppProvider(cfg *config.Config) *AppProvider {
	return &AppProvider{cfg: cfg.Firebase}
}

// App builds the app on first use and returns the same result afterwards.
func (p *AppProvider) App(ctx context.Context) (*firebasesdk.App, error) {
	p.once.Do(func() {
		var opts []option.ClientOption
		if p.cfg.CredentialsPath != "" {
			opts = append(opts, option.WithCredentialsFile(p.cfg.CredentialsPath))
		}

		var appCfg *firebasesdk.Config
		if p.cfg.ProjectID != "" {
			appCfg = &firebasesdk.Config{ProjectID: p.cfg.ProjectID}
		}

		p.app, p.err = firebasesdk.NewApp(ctx, appCfg, opts...)
		if p.err != nil {
			p.err = errors.Wrap(p.err, "initialize firebase app")
		}
	})

	return p.app, p.err
}
