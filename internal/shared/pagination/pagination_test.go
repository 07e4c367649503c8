package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalize は範囲外の値がデフォルトへ丸められることを検証します。
func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		page, limit   int
		wantPage      int
		wantLimit     int
	}{
		{name: "valid values preserved", page: 3, limit: 20, wantPage: 3, wantLimit: 20},
		{name: "zero page defaults", page: 0, limit: 20, wantPage: DefaultPage, wantLimit: 20},
		{name: "negative limit defaults", page: 1, limit: -5, wantPage: 1, wantLimit: DefaultLimit},
		{name: "limit capped", page: 1, limit: 500, wantPage: 1, wantLimit: MaxLimit},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit := Normalize(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantLimit, limit)
		})
	}
}

// TestParams はクエリ文字列の解析とフォールバックを検証します。
func TestParams(t *testing.T) {
	t.Parallel()

	page, limit := Params("2", "30")
	assert.Equal(t, 2, page)
	assert.Equal(t, 30, limit)

	page, limit = Params("", "")
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)

	page, limit = Params("abc", "xyz")
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)
}

// TestOffset はページからの行オフセット計算を検証します。
func TestOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 10, Offset(2, 10))
	assert.Equal(t, 40, Offset(5, 10))
}

// TestMetaFor は総件数からのページメタデータ構築を検証します。
func TestMetaFor(t *testing.T) {
	t.Parallel()

	meta := MetaFor(25, 2, 10)
	assert.Equal(t, Meta{CurrentPage: 2, TotalPages: 3, TotalItems: 25}, meta)

	// 空の結果はページ数0
	meta = MetaFor(0, 1, 10)
	assert.Equal(t, Meta{CurrentPage: 1, TotalPages: 0, TotalItems: 0}, meta)

	// ちょうど割り切れる場合
	meta = MetaFor(20, 1, 10)
	assert.Equal(t, 2, meta.TotalPages)
}
