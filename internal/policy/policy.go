// Package policy holds the pure authorization decisions for posts.
// Ownership is the only axis: there are no roles and no admin override.
package policy

import (
	"quill/internal/auth"
	"quill/internal/model"
)

// CanRead reports whether ident may read post. Published posts are public,
// including to anonymous readers; drafts are visible only to their author.
func CanRead(ident *auth.Identity, post *model.Post) bool {
	if post.Published {
		return true
	}
	return ident != nil && ident.ID == post.AuthorID
}

// CanWrite reports whether ident may update or delete post. Update and
// delete share one rule: only the author, never anonymous.
// A post whose author row no longer exists is unwritable by anyone, since
// no identity can match the dangling reference.
func CanWrite(ident *auth.Identity, post *model.Post) bool {
	return ident != nil && ident.ID == post.AuthorID
}
