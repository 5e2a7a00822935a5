package auth

import "context"

type subjectKey struct{}

// WithSubject stores the authenticated user name for handlers that keep
// per-user state.
func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, subjectKey{}, sub)
}

func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(subjectKey{}).(string)
	return s
}
