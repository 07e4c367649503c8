// Package dto はpostsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "encoding/json"

// CreatePostReq は/posts/newエンドポイントのリクエストボディを表します。
// Editが指定された場合、本文は外部の生成AIで書き直されます。
type CreatePostReq struct {
	Post     string `json:"post" binding:"required"`
	Edit     string `json:"edit"`
	ImageURL string `json:"imageUrl"`
	VideoURL string `json:"videoUrl"`
}

// UpdatePostReq はPATCH /posts/:idのリクエストボディを表します。
// 指定されたフィールドのみ更新されます。
type UpdatePostReq struct {
	Post     string `json:"post"`
	ImageURL string `json:"imageUrl"`
	VideoURL string `json:"videoUrl"`
}

// CommentReq は/posts/comment/:idのリクエストボディを表します。
type CommentReq struct {
	Comment string `json:"comment" binding:"required"`
}

// MentionReq は/posts/mentionsのリクエストボディを表します。
// Postは受信者へそのまま届けられる任意のJSONペイロードです。
type MentionReq struct {
	UserID uint            `json:"userId" binding:"required"`
	Post   json.RawMessage `json:"post" binding:"required"`
}
