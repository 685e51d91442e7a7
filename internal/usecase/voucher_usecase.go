package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type VoucherUsecase struct {
	voucherRepo     repo.VoucherRepository
	userVoucherRepo repo.UserVoucherRepository
	auditRepo       repo.AuditLogRepository
}

// DI
func NewVoucherUsecase(
	voucherRepo repo.VoucherRepository,
	userVoucherRepo repo.UserVoucherRepository,
	auditRepo repo.AuditLogRepository,
) *VoucherUsecase {
	return &VoucherUsecase{
		voucherRepo:     voucherRepo,
		userVoucherRepo: userVoucherRepo,
		auditRepo:       auditRepo,
	}
}

// 公開バウチャー一覧。期間外のものは出さない。
func (u *VoucherUsecase) ListPublic(ctx context.Context) ([]model.Voucher, error) {
	all, err := u.voucherRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := time.Now()
	items := make([]model.Voucher, 0, len(all))
	for _, v := range all {
		if v.IsValidAt(now) {
			items = append(items, v)
		}
	}
	return items, nil
}

// 公開バウチャー詳細。期間外は「存在しない扱い」。
func (u *VoucherUsecase) GetPublicDetail(ctx context.Context, voucherID int64) (model.Voucher, error) {
	if voucherID <= 0 {
		return model.Voucher{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	v, err := u.voucherRepo.FindByID(ctx, voucherID)
	if err == repo.ErrNotFound {
		return model.Voucher{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Voucher{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !v.IsValidAt(time.Now()) {
		return model.Voucher{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return v, nil
}

// バウチャーを自分に保存する。
func (u *VoucherUsecase) Assign(ctx context.Context, userID int64, voucherID int64) (model.UserVoucher, error) {
	if userID <= 0 {
		return model.UserVoucher{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if voucherID <= 0 {
		return model.UserVoucher{}, NewHTTPError(http.StatusBadRequest, "invalid voucher_id")
	}

	v, err := u.voucherRepo.FindByID(ctx, voucherID)
	if err == repo.ErrNotFound {
		return model.UserVoucher{}, NewHTTPError(http.StatusNotFound, "voucher not found")
	}
	if err != nil {
		return model.UserVoucher{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//期間外は保存できない
	if !v.IsValidAt(time.Now()) {
		return model.UserVoucher{}, NewHTTPError(http.StatusBadRequest, "voucher expired")
	}

	//1ユーザーあたりの上限
	perUser, err := u.userVoucherRepo.CountByUserAndVoucher(ctx, userID, voucherID)
	if err != nil {
		return model.UserVoucher{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if perUser >= int64(v.UsageLimitPerUser) {
		return model.UserVoucher{}, NewHTTPError(http.StatusBadRequest, "voucher already saved")
	}

	//全体の上限
	global, err := u.userVoucherRepo.CountByVoucher(ctx, voucherID)
	if err != nil {
		return model.UserVoucher{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if global >= int64(v.UsageLimitGlobal) {
		return model.UserVoucher{}, NewHTTPError(http.StatusBadRequest, "voucher sold out")
	}

	now := time.Now()
	uv, err := u.userVoucherRepo.Create(ctx, model.UserVoucher{
		UserID:    userID,
		VoucherID: voucherID,
		Used:      false,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.UserVoucher{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	uv.Voucher = v
	return uv, nil
}

// 自分の保存済みバウチャー一覧。
func (u *VoucherUsecase) ListMine(ctx context.Context, userID int64) ([]model.UserVoucher, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.userVoucherRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

type AdminVoucherInput struct {
	Code              string
	Description       string
	Image             string
	DiscountType      string
	DiscountValue     int64
	MinOrder          int64
	MaxDiscount       int64
	StartDate         time.Time
	EndDate           time.Time
	UsageLimitPerUser int
	UsageLimitGlobal  int
}

func (u *VoucherUsecase) validateAdminInput(in AdminVoucherInput) error {
	if strings.TrimSpace(in.Code) == "" {
		return NewHTTPError(http.StatusBadRequest, "code required")
	}

	//discount_typeはpercent/fixedのみ
	switch model.DiscountType(in.DiscountType) {
	case model.DiscountTypePercent:
		if in.DiscountValue < 1 || in.DiscountValue > 100 {
			return NewHTTPError(http.StatusBadRequest, "percent must be 1-100")
		}
	case model.DiscountTypeFixed:
		if in.DiscountValue <= 0 {
			return NewHTTPError(http.StatusBadRequest, "discount_value must be > 0")
		}
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid discount_type")
	}

	if in.MinOrder < 0 {
		return NewHTTPError(http.StatusBadRequest, "min_order must be >= 0")
	}
	if in.MaxDiscount < 0 {
		return NewHTTPError(http.StatusBadRequest, "max_discount must be >= 0")
	}
	if in.EndDate.Before(in.StartDate) {
		return NewHTTPError(http.StatusBadRequest, "end_date before start_date")
	}
	if in.UsageLimitPerUser < 1 {
		return NewHTTPError(http.StatusBadRequest, "usage_limit_per_user must be >= 1")
	}
	if in.UsageLimitGlobal < 1 {
		return NewHTTPError(http.StatusBadRequest, "usage_limit_global must be >= 1")
	}

	return nil
}

func (u *VoucherUsecase) AdminCreate(ctx context.Context, adminUserID int64, in AdminVoucherInput) (model.Voucher, error) {
	if adminUserID <= 0 {
		return model.Voucher{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.validateAdminInput(in); err != nil {
		return model.Voucher{}, err
	}

	//同一コードは不可
	if _, err := u.voucherRepo.FindByCode(ctx, strings.TrimSpace(in.Code)); err == nil {
		return model.Voucher{}, NewHTTPError(http.StatusConflict, "code already exists")
	} else if err != repo.ErrNotFound {
		return model.Voucher{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := time.Now()
	v, err := u.voucherRepo.Create(ctx, model.Voucher{
		Code:              strings.TrimSpace(in.Code),
		Description:       in.Description,
		Image:             in.Image,
		DiscountType:      model.DiscountType(in.DiscountType),
		DiscountValue:     in.DiscountValue,
		MinOrder:          in.MinOrder,
		MaxDiscount:       in.MaxDiscount,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		UsageLimitPerUser: in.UsageLimitPerUser,
		UsageLimitGlobal:  in.UsageLimitGlobal,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		return model.Voucher{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       model.AuditActionCreateVoucher,
		ResourceType: model.AuditResourceVoucher,
		ResourceID:   v.ID,
		AfterJSON:    fmt.Sprintf(`{"code":%q,"discount_type":%q,"discount_value":%d}`, v.Code, v.DiscountType, v.DiscountValue),
		CreatedAt:    time.Now(),
	}); err != nil {
		return model.Voucher{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return v, nil
}

func (u *VoucherUsecase) AdminUpdate(ctx context.Context, adminUserID int64, voucherID int64, in AdminVoucherInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if voucherID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.validateAdminInput(in); err != nil {
		return err
	}

	before, err := u.voucherRepo.FindByID(ctx, voucherID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//コード変更時の重複チェック
	code := strings.TrimSpace(in.Code)
	if code != before.Code {
		if _, err := u.voucherRepo.FindByCode(ctx, code); err == nil {
			return NewHTTPError(http.StatusConflict, "code already exists")
		} else if err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	err = u.voucherRepo.Update(ctx, model.Voucher{
		ID:                voucherID,
		Code:              code,
		Description:       in.Description,
		Image:             in.Image,
		DiscountType:      model.DiscountType(in.DiscountType),
		DiscountValue:     in.DiscountValue,
		MinOrder:          in.MinOrder,
		MaxDiscount:       in.MaxDiscount,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		UsageLimitPerUser: in.UsageLimitPerUser,
		UsageLimitGlobal:  in.UsageLimitGlobal,
		UpdatedAt:         time.Now(),
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       model.AuditActionUpdateVoucher,
		ResourceType: model.AuditResourceVoucher,
		ResourceID:   voucherID,
		BeforeJSON:   fmt.Sprintf(`{"code":%q,"discount_type":%q,"discount_value":%d}`, before.Code, before.DiscountType, before.DiscountValue),
		AfterJSON:    fmt.Sprintf(`{"code":%q,"discount_type":%q,"discount_value":%d}`, code, in.DiscountType, in.DiscountValue),
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

func (u *VoucherUsecase) AdminDelete(ctx context.Context, adminUserID int64, voucherID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if voucherID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.voucherRepo.DeleteByID(ctx, voucherID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       model.AuditActionDeleteVoucher,
		ResourceType: model.AuditResourceVoucher,
		ResourceID:   voucherID,
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}
