package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// ============================================================================
// User Operations
// ============================================================================

// CreateUser persists a new user as a single conditional create. The MERGE
// keyed on email either creates the node with the given properties or
// matches an existing one; comparing the stored id against the candidate id
// tells the two apart in the same statement, so there is no window between
// a uniqueness check and the write. Returns ErrEmailTaken when the email is
// already claimed.
func (r *Repository) CreateUser(ctx context.Context, user User) (*User, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	session := r.sessions.Session(ctx, neo4j.AccessModeWrite)

	query := `
		MERGE (user:User {email: $email})
		ON CREATE SET user += $props
		RETURN user, user.id = $id AS created
	`

	record, err := CollectOne(ctx, session, query, map[string]any{
		"email": user.Email,
		"id":    user.ID,
		"props": map[string]any{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"slug":      user.Slug,
			"password":  user.Password,
			"role":      user.Role,
			"avatar":    user.Avatar,
			"deleted":   user.Deleted,
			"disabled":  user.Disabled,
			"verified":  user.Verified,
			"createdAt": user.CreatedAt,
		},
	})
	if err != nil {
		if isConstraintViolation(err) {
			return nil, ErrEmailTaken{Email: user.Email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if created, _ := record["created"].(bool); !created {
		return nil, ErrEmailTaken{Email: user.Email}
	}

	node, ok := record["user"].(neo4j.Node)
	if !ok {
		return nil, fmt.Errorf("unexpected result shape for created user")
	}

	r.logger.Info("User created",
		zap.String("user_id", user.ID),
		zap.String("slug", user.Slug),
	)
	return userFromProps(node.Props), nil
}

// isConstraintViolation reports whether err is the store rejecting a write
// against the uniqueness constraint installed by EnsureSchema.
func isConstraintViolation(err error) bool {
	var neoErr *neo4j.Neo4jError
	return errors.As(err, &neoErr) &&
		neoErr.Code == "Neo.ClientError.Schema.ConstraintValidationFailed"
}

// FindUserByEmail looks up a single user by email, password hash included.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	session := r.sessions.Session(ctx, neo4j.AccessModeRead)

	query := `
		MATCH (user:User {email: $email})
		RETURN user {.id, .slug, .name, .avatar, .locationName, .about,
		              .email, .verified, .password, .role} AS user
		LIMIT 1
	`

	record, err := CollectOne(ctx, session, query, map[string]any{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	props, ok := record["user"].(map[string]any)
	if !ok {
		return nil, ErrUserNotFound
	}

	return userFromProps(props), nil
}
