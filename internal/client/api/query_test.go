package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuery_Encode_KeepsInsertionOrder(t *testing.T) {
	q := &Query{}
	q.AddInt("page", 2).AddInt("pageSize", 12).Add("status", "Completed")

	require.Equal(t, "page=2&pageSize=12&status=Completed", q.Encode())
}

func TestQuery_Encode_SkipsUndefined(t *testing.T) {
	q := &Query{}
	q.AddInt("page", 0).
		Add("search", "").
		AddInt64Ptr("techStackId", nil).
		AddBoolPtr("isFeatured", nil)

	require.Equal(t, 0, q.Len())
	require.Equal(t, "", q.Encode())
}

func TestQuery_Encode_Escapes(t *testing.T) {
	q := &Query{}
	featured := false
	id := int64(7)
	q.Add("search", "go & rust").AddInt64Ptr("techStackId", &id).AddBoolPtr("isFeatured", &featured)

	require.Equal(t, "search=go+%26+rust&techStackId=7&isFeatured=false", q.Encode())
}

func TestQuery_NilIsEmpty(t *testing.T) {
	var q *Query
	require.Equal(t, 0, q.Len())
	require.Equal(t, "", q.Encode())
}
