package middleware

import "context"

type userHolderKey struct{}

// userHolder lets inner middleware report the authenticated user back to RequestLog.
type userHolder struct {
	id int
}

func withUserHolder(ctx context.Context, h *userHolder) context.Context {
	return context.WithValue(ctx, userHolderKey{}, h)
}

func noteUser(ctx context.Context, id int) {
	if h, ok := ctx.Value(userHolderKey{}).(*userHolder); ok {
		h.id = id
	}
}
