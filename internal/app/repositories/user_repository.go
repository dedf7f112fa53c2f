package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/db"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/dberrors"
	"github.com/yigit/admissions/internal/pkg/logger"
)

var userColumns = []string{"id", "email", "password", "full_name", "active", "fs_uniquifier", "created_at"}

// UserRepository handles users, roles and their links
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateUser inserts user and links it to roles in one transaction
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User, roles []*models.Role) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("email", "password", "full_name", "active", "fs_uniquifier").
		Values(user.Email, user.Password, user.FullName, user.Active, user.Uniquifier).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
			if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
				return apperrors.ErrEmailAlreadyExists
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		user.Roles = user.Roles[:0]
		for _, role := range roles {
			if err := r.assignRole(ctx, tx, user.ID, role.ID); err != nil {
				return err
			}
			user.Roles = append(user.Roles, role.Name)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			logger.Error().Err(err).Msg("Error executing create user transaction")
		}
		return 0, err
	}

	return user.ID, nil
}

// GetUserByEmail retrieves a user with roles by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, squirrel.Eq{"email": email})
}

// GetUserByID retrieves a user with roles by id
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": id})
}

func (r *UserRepository) getUser(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user := &models.User{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Email, &user.Password, &user.FullName, &user.Active, &user.Uniquifier, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	roles, err := r.userRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

func (r *UserRepository) userRoles(ctx context.Context, userID int64) ([]models.RoleName, error) {
	sql, args, err := r.sb.Select("r.name").
		From("roles r").
		Join("roles_users ru ON ru.role_id = r.id").
		Where(squirrel.Eq{"ru.user_id": userID}).
		OrderBy("r.name ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building user roles SQL")
		return nil, fmt.Errorf("failed to build user roles query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing user roles query")
		return nil, fmt.Errorf("error querying user roles: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[models.RoleName])
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning user roles")
		return nil, fmt.Errorf("error scanning user roles: %w", err)
	}
	return names, nil
}

// UserExists reports whether a user with id exists
func (r *UserRepository) UserExists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("users").
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building user exists SQL")
		return false, fmt.Errorf("failed to build user existence query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Int64("userID", id).Msg("Error checking user existence")
		return false, fmt.Errorf("error checking user existence: %w", err)
	}
	return exists, nil
}

// UpdateUniquifier replaces the session uniquifier, revoking issued tokens
func (r *UserRepository) UpdateUniquifier(ctx context.Context, userID int64, uniquifier string) error {
	sql, args, err := r.sb.Update("users").
		Set("fs_uniquifier", uniquifier).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update uniquifier SQL")
		return fmt.Errorf("failed to build update uniquifier query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update uniquifier query")
		return fmt.Errorf("error updating uniquifier: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetRoleByName retrieves a role by its unique name
func (r *UserRepository) GetRoleByName(ctx context.Context, name models.RoleName) (*models.Role, error) {
	sql, args, err := r.sb.Select("id", "name", "description").
		From("roles").
		Where(squirrel.Eq{"name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get role SQL")
		return nil, fmt.Errorf("failed to build get role query: %w", err)
	}

	role := &models.Role{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&role.ID, &role.Name, &role.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoleNotFound
		}
		logger.Error().Err(err).Str("role", string(name)).Msg("Error scanning role row")
		return nil, fmt.Errorf("error getting role: %w", err)
	}
	return role, nil
}

// CreateRole inserts a role
func (r *UserRepository) CreateRole(ctx context.Context, role *models.Role) (int64, error) {
	sql, args, err := r.sb.Insert("roles").
		Columns("name", "description").
		Values(role.Name, role.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create role SQL")
		return 0, fmt.Errorf("failed to build create role query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&role.ID); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrRoleAlreadyExists
		}
		logger.Error().Err(err).Str("role", string(role.Name)).Msg("Error executing create role query")
		return 0, fmt.Errorf("error creating role: %w", err)
	}
	return role.ID, nil
}

// AssignRole links a user to a role. Assigning an already held role is a no-op.
func (r *UserRepository) AssignRole(ctx context.Context, userID, roleID int64) error {
	return r.assignRole(ctx, r.db, userID, roleID)
}

func (r *UserRepository) assignRole(ctx context.Context, q db.Querier, userID, roleID int64) error {
	sql, args, err := r.sb.Insert("roles_users").
		Columns("user_id", "role_id").
		Values(userID, roleID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building assign role SQL")
		return fmt.Errorf("failed to build assign role query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrRoleNotFound
		}
		return fmt.Errorf("error assigning role: %w", err)
	}
	return nil
}
