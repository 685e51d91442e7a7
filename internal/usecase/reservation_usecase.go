package usecase

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

var phonePattern = regexp.MustCompile(`^[0-9+\-\s]{8,20}$`)

// 卓と予約は参照のみ（作成・変更は未対応）。
type ReservationUsecase struct {
	tableRepo       repo.TableRepository
	reservationRepo repo.ReservationRepository
}

// DI
func NewReservationUsecase(
	tableRepo repo.TableRepository,
	reservationRepo repo.ReservationRepository,
) *ReservationUsecase {
	return &ReservationUsecase{
		tableRepo:       tableRepo,
		reservationRepo: reservationRepo,
	}
}

func (u *ReservationUsecase) ListTables(ctx context.Context) ([]model.Table, error) {
	items, err := u.tableRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// 日付はYYYY-MM-DD固定。
func (u *ReservationUsecase) ListByDate(ctx context.Context, date string) ([]model.Reservation, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid date")
	}

	items, err := u.reservationRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ReservationUsecase) ListByPhone(ctx context.Context, phone string) ([]model.Reservation, error) {
	if !phonePattern.MatchString(phone) {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid phone")
	}

	items, err := u.reservationRepo.ListByPhone(ctx, phone)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}
