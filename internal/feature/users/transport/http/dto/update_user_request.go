// Package dto はusersフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// UpdateUserReq はPATCH /users/:idのリクエストボディを表します。
type UpdateUserReq struct {
	Username string `json:"username" binding:"required"`
}
