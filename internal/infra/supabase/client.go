package supabase

import (
	"fmt"

	"image-panel/internal/domain"

	"github.com/supabase-community/supabase-go"
)

// SupabaseClient implements the domain.SupabaseClient interface
type SupabaseClient struct {
	client *supabase.Client
	config domain.Config
	logger domain.Logger
}

// NewSupabaseClient creates a new Supabase client instance
func NewSupabaseClient(config domain.Config, logger domain.Logger) *SupabaseClient {
	return &SupabaseClient{
		config: config,
		logger: logger,
	}
}

// Configured reports whether URL and key are present
func (s *SupabaseClient) Configured() bool {
	return s.config.GetSupabaseURL() != "" && s.config.GetSupabaseKey() != ""
}

// Enabled reports whether the client is initialized and usable
func (s *SupabaseClient) Enabled() bool {
	return s.client != nil
}

// DB returns the underlying Supabase client, nil until Initialize succeeds
func (s *SupabaseClient) DB() *supabase.Client {
	return s.client
}

// Initialize establishes a connection to Supabase
func (s *SupabaseClient) Initialize() error {
	if !s.Configured() {
		return fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(s.config.GetSupabaseURL(), s.config.GetSupabaseKey(), &supabase.ClientOptions{})
	if err != nil {
		return fmt.Errorf("failed to create Supabase client: %w", err)
	}

	s.client = client
	s.logger.Info("Supabase client initialized successfully", "url", s.config.GetSupabaseURL())
	return nil
}
