package fakeapi

import "context"

type recordKey struct{}

func withRecord(ctx context.Context, r Request) context.Context {
	return context.WithValue(ctx, recordKey{}, r)
}

func recordFrom(ctx context.Context) Request {
	r, _ := ctx.Value(recordKey{}).(Request)
	return r
}
