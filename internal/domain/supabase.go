package domain

import "github.com/supabase-community/supabase-go"

// SupabaseClient gives access to an initialized Supabase client
type SupabaseClient interface {
	Initialize() error
	Enabled() bool

	DB() *supabase.Client
}
