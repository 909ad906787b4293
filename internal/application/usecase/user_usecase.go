package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jpvargas/asistencia-api/internal/application/audit"
	"github.com/jpvargas/asistencia-api/internal/application/dto"
	"github.com/jpvargas/asistencia-api/internal/domain"
	"github.com/jpvargas/asistencia-api/internal/domain/entity"
	"github.com/jpvargas/asistencia-api/internal/domain/repository"
)

// UserUseCase gestión de usuarios por el admin de la organización.
type UserUseCase struct {
	repo    repository.UserRepository
	auditor *audit.Recorder
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, auditor *audit.Recorder) *UserUseCase {
	return &UserUseCase{repo: repo, auditor: auditor}
}

// Create crea un usuario dentro de la organización del admin.
func (uc *UserUseCase) Create(organizationID, actorID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	existing, _ := uc.repo.GetByEmailAndOrganization(in.Email, organizationID)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Email:          in.Email,
		PasswordHash:   string(hash),
		Name:           in.Name,
		Role:           in.Role,
		Status:         "active",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	uc.auditor.Record(organizationID, actorID, "user", user.ID, entity.AuditCreate, "usuario creado")
	return entityToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID, acotado a la organización.
func (uc *UserUseCase) GetByID(organizationID, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.OrganizationID != organizationID {
		return nil, nil
	}
	return entityToUserResponse(user), nil
}

// Update actualiza nombre, rol o estado de un usuario (solo campos presentes).
func (uc *UserUseCase) Update(organizationID, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.OrganizationID != organizationID {
		return nil, nil
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Status != nil {
		user.Status = *in.Status
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	uc.auditor.Record(organizationID, actorID, "user", user.ID, entity.AuditUpdate, "usuario actualizado")
	return entityToUserResponse(user), nil
}

// List lista los usuarios de la organización con paginación.
func (uc *UserUseCase) List(organizationID string, limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.ListByOrganization(organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *entityToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un usuario de la organización. Un admin no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(organizationID, actorID, id string) error {
	if id == actorID {
		return domain.ErrConflict
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil || user.OrganizationID != organizationID {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.auditor.Record(organizationID, actorID, "user", id, entity.AuditDelete, "usuario eliminado")
	return nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		OrganizationID: u.OrganizationID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		Status:         u.Status,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
