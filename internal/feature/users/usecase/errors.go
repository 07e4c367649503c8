package usecase

import "errors"

// ErrUserNotFound は対象ユーザーが見つからない場合に返されます。
var ErrUserNotFound = errors.New("user not found")

// ErrFollowSelf は自分自身をフォローしようとした場合に返されます。
var ErrFollowSelf = errors.New("cannot follow yourself")

// ErrAlreadyFollowing は既にフォロー済みのユーザーをフォローしようとした場合に返されます。
var ErrAlreadyFollowing = errors.New("already following")

// ErrNotFollowing はフォローしていないユーザーをアンフォローしようとした場合に返されます。
var ErrNotFollowing = errors.New("not following")
