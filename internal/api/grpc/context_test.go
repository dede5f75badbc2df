package grpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestCallerID(t *testing.T) {
	incoming := func(pairs ...string) context.Context {
		return metadata.NewIncomingContext(context.Background(), metadata.Pairs(pairs...))
	}

	id, err := callerID(incoming(userIDKey, "42"))
	require.NoError(t, err)
	assert.Equal(t, int32(42), id)

	for name, ctx := range map[string]context.Context{
		"no metadata": context.Background(),
		"no user":     incoming("authorization", "Bearer x"),
		"not numeric": incoming(userIDKey, "abc"),
		"zero":        incoming(userIDKey, "0"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := callerID(ctx)
			assert.Equal(t, codes.Unauthenticated, status.Code(err))
		})
	}
}
