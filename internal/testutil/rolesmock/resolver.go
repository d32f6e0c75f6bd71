package rolesmock

import "context"

// Static resolves roles from a fixed user->roles map; unknown users get none.
type Static struct {
	ByUser map[string][]string
}

func New(byUser map[string][]string) *Static {
	return &Static{ByUser: byUser}
}

func (s *Static) Roles(_ context.Context, userID string) ([]string, error) {
	return s.ByUser[userID], nil
}
