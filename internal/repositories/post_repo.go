package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobive/backend/internal/models"
)

type PostRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

const postColumns = `p.id, p.author_id, p.content, p.tags, p.image_urls, p.preview,
	(SELECT count(*) FROM post_likes l WHERE l.post_id = p.id) AS like_count,
	p.created_at, p.updated_at`

func (r *PostRepo) Create(ctx context.Context, p *models.Post) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO posts (author_id, content, tags, image_urls, preview)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, p.AuthorID, p.Content, p.Tags, p.ImageURLs, p.Preview,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var p models.Post
	err := r.pool.QueryRow(ctx, `
		SELECT `+postColumns+` FROM posts p WHERE p.id = $1
	`, id).Scan(&p.ID, &p.AuthorID, &p.Content, &p.Tags, &p.ImageURLs, &p.Preview,
		&p.LikeCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepo) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+` FROM posts p
		ORDER BY p.created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Content, &p.Tags, &p.ImageURLs, &p.Preview,
			&p.LikeCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+` FROM posts p
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC LIMIT $2 OFFSET $3
	`, authorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Content, &p.Tags, &p.ImageURLs, &p.Preview,
			&p.LikeCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepo) Update(ctx context.Context, p *models.Post) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE posts SET content = $1, tags = $2, image_urls = $3, preview = $4, updated_at = now()
		WHERE id = $5
	`, p.Content, p.Tags, p.ImageURLs, p.Preview, p.ID)
	return err
}

func (r *PostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}

// ToggleLike likes the post if the user has not, unlikes otherwise, and
// reports whether the post is liked afterwards.
func (r *PostRepo) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`, postID, userID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	_, err = r.pool.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	return false, err
}

func (r *PostRepo) AddComment(ctx context.Context, c *models.PostComment) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO post_comments (post_id, user_id, text) VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, c.PostID, c.UserID, c.Text).Scan(&c.ID, &c.CreatedAt)
}

func (r *PostRepo) GetComment(ctx context.Context, id uuid.UUID) (*models.PostComment, error) {
	var c models.PostComment
	err := r.pool.QueryRow(ctx, `
		SELECT id, post_id, user_id, text, created_at FROM post_comments WHERE id = $1
	`, id).Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostRepo) DeleteComment(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM post_comments WHERE id = $1`, id)
	return err
}

func (r *PostRepo) ListComments(ctx context.Context, postID uuid.UUID) ([]models.PostComment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, post_id, user_id, text, created_at
		FROM post_comments WHERE post_id = $1 ORDER BY created_at
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.PostComment
	for rows.Next() {
		var c models.PostComment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
