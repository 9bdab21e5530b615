package repository

import (
	"context"
	"errors"
	"time"

	"bodega/internal/model"

	"gorm.io/gorm"
)

type UsuarioRepository interface {
	// FindByCredentials looks up an exact username+password match. Unknown
	// user and wrong password are indistinguishable: both return
	// ErrNoEncontrado.
	FindByCredentials(ctx context.Context, username, password string) (*model.Usuario, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, usuarios []model.Usuario) error
	UpdateLastLogin(ctx context.Context, id uint, t time.Time) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) FindByCredentials(ctx context.Context, username, password string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Where("username = ? AND password = ?", username, password).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).Count(&n).Error
	return n, err
}

func (r *usuarioRepo) CreateBatch(ctx context.Context, usuarios []model.Usuario) error {
	return r.db.WithContext(ctx).Create(&usuarios).Error
}

func (r *usuarioRepo) UpdateLastLogin(ctx context.Context, id uint, t time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("id_user = ?", id).
		Update("last_login", t).Error
}
