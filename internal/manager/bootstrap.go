package manager

import "context"

// Default first-run credentials. They are known to anyone reading this file;
// set bootstrap.username and bootstrap.password to override them.
const (
	DefaultBootstrapUsername = "admin"
	DefaultBootstrapPassword = "admin"
)

// Bootstrap registers the first-run account when no user exists yet.
// It reports whether an account was created. Once any user exists it is a
// no-op.
func (m *Manager) Bootstrap(ctx context.Context) (bool, error) {
	var created bool
	err := m.write(func() error {
		count, err := m.credentials.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			m.logger.Debug().Int64("users", count).Msg("bootstrap skipped, users exist")
			return nil
		}

		created, err = m.credentials.Register(ctx, m.bootstrapUsername, m.bootstrapPassword)
		if err != nil {
			return err
		}

		if created {
			evt := m.logger.Warn().Str("username", m.bootstrapUsername)
			if m.bootstrapUsername == DefaultBootstrapUsername && m.bootstrapPassword == DefaultBootstrapPassword {
				evt = evt.Bool("default_password", true)
			}
			evt.Msg("created first-run account")
		}
		return nil
	})
	return created, err
}
