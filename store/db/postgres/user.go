package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/itzayush21/travy/store"
)

func (d *DB) CreateUser(ctx context.Context, create *store.User) (*store.User, error) {
	fields := []string{"uid", "email", "nickname", "password_hash", "created_ts"}
	args := []any{create.UID, create.Email, create.Nickname, create.PasswordHash, create.CreatedTs}

	stmt := `INSERT INTO "user" (` + strings.Join(fields, ", ") + `) VALUES (` + placeholders(len(args)) + `) RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}
	return create, nil
}

func (d *DB) ListUsers(ctx context.Context, find *store.FindUser) ([]*store.User, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.UID != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *find.UID)
	}
	if find.Email != nil {
		where, args = append(where, "email = "+placeholder(len(args)+1)), append(args, *find.Email)
	}

	query := `SELECT id, uid, email, nickname, password_hash, created_ts FROM "user" WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	list := make([]*store.User, 0)
	for rows.Next() {
		u := &store.User{}
		if err := rows.Scan(&u.ID, &u.UID, &u.Email, &u.Nickname, &u.PasswordHash, &u.CreatedTs); err != nil {
			return nil, errors.Wrap(err, "failed to scan user")
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate users")
	}
	return list, nil
}

func (d *DB) UpdateUser(ctx context.Context, update *store.UpdateUser) (*store.User, error) {
	set, args := []string{}, []any{}

	if update.Nickname != nil {
		set, args = append(set, "nickname = "+placeholder(len(args)+1)), append(args, *update.Nickname)
	}
	if update.PasswordHash != nil {
		set, args = append(set, "password_hash = "+placeholder(len(args)+1)), append(args, *update.PasswordHash)
	}
	if len(set) == 0 {
		return nil, errors.New("no fields to update")
	}

	args = append(args, update.ID)
	stmt := `UPDATE "user" SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args)) +
		` RETURNING id, uid, email, nickname, password_hash, created_ts`
	u := &store.User{}
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&u.ID, &u.UID, &u.Email, &u.Nickname, &u.PasswordHash, &u.CreatedTs); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("user not found")
		}
		return nil, errors.Wrap(err, "failed to update user")
	}
	return u, nil
}

func (d *DB) DeleteUser(ctx context.Context, delete *store.DeleteUser) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM "user" WHERE id = $1`, delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	return nil
}

func (d *DB) UpsertUserProfile(ctx context.Context, upsert *store.UserProfile) (*store.UserProfile, error) {
	stmt := `
		INSERT INTO user_profile (
			user_id, blood_group, health_conditions, allergies,
			food_preferences, travel_preferences, preferred_language,
			emergency_name, emergency_phone
		)
		VALUES (` + placeholders(9) + `)
		ON CONFLICT (user_id) DO UPDATE SET
			blood_group = EXCLUDED.blood_group,
			health_conditions = EXCLUDED.health_conditions,
			allergies = EXCLUDED.allergies,
			food_preferences = EXCLUDED.food_preferences,
			travel_preferences = EXCLUDED.travel_preferences,
			preferred_language = EXCLUDED.preferred_language,
			emergency_name = EXCLUDED.emergency_name,
			emergency_phone = EXCLUDED.emergency_phone`
	if _, err := d.db.ExecContext(ctx, stmt,
		upsert.UserID, upsert.BloodGroup, upsert.HealthConditions, upsert.Allergies,
		upsert.FoodPreferences, upsert.TravelPreferences, upsert.PreferredLanguage,
		upsert.EmergencyName, upsert.EmergencyPhone,
	); err != nil {
		return nil, errors.Wrap(err, "failed to upsert user profile")
	}
	return upsert, nil
}

func (d *DB) GetUserProfile(ctx context.Context, find *store.FindUserProfile) (*store.UserProfile, error) {
	query := `
		SELECT user_id, blood_group, health_conditions, allergies,
			food_preferences, travel_preferences, preferred_language,
			emergency_name, emergency_phone
		FROM user_profile WHERE user_id = $1`
	p := &store.UserProfile{}
	err := d.db.QueryRowContext(ctx, query, find.UserID).Scan(
		&p.UserID, &p.BloodGroup, &p.HealthConditions, &p.Allergies,
		&p.FoodPreferences, &p.TravelPreferences, &p.PreferredLanguage,
		&p.EmergencyName, &p.EmergencyPhone,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get user profile")
	}
	return p, nil
}
