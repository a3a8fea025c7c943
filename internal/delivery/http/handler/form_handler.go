package handler

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/listing-portal/internal/delivery/http/middleware"
	"github.com/listing-portal/internal/domain"
	"github.com/listing-portal/internal/pkg/errors"
	"github.com/listing-portal/internal/pkg/utils"
	"github.com/listing-portal/internal/usecase"
	"github.com/listing-portal/internal/usecase/dto"
)

const (
	imagesFormField = "files"
	maxImagesPerAdd = 20
)

// FormHandler - форма создания объявления
type FormHandler struct {
	formUC   *usecase.FormUseCase
	submitUC *usecase.SubmitUseCase
	logger   *zap.Logger
}

func NewFormHandler(formUC *usecase.FormUseCase, submitUC *usecase.SubmitUseCase, logger *zap.Logger) *FormHandler {
	return &FormHandler{
		formUC:   formUC,
		submitUC: submitUC,
		logger:   logger,
	}
}

// formRequest - владелец и id формы из запроса
func formRequest(c *fiber.Ctx) (formID, ownerID string, err error) {
	session, err := middleware.AuthSession(c)
	if err != nil {
		return "", "", err
	}
	return c.Params("id"), session.User.ID, nil
}

// Create godoc
// @Summary Открыть форму
// @Description Создаёт пустой черновик объявления на выбранном языке
// @Tags Forms
// @Accept json
// @Produce json
// @Param request body dto.CreateFormRequest false "Язык формы"
// @Success 201 {object} utils.SuccessResponse{data=dto.FormState}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/forms [post]
func (h *FormHandler) Create(c *fiber.Ctx) error {
	session, err := middleware.AuthSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.CreateFormRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return utils.SendError(c, err)
		}
	}
	if req.Locale == "" {
		req.Locale = middleware.RequestLocale(c)
	}

	state, err := h.formUC.Create(c.UserContext(), session.User.ID, req.Locale)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, state)
}

// Get godoc
// @Summary Состояние формы
// @Tags Forms
// @Produce json
// @Param id path string true "ID формы"
// @Success 200 {object} utils.SuccessResponse{data=dto.FormState}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/forms/{id} [get]
func (h *FormHandler) Get(c *fiber.Ctx) error {
	formID, ownerID, err := formRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	state, err := h.formUC.Get(c.UserContext(), formID, ownerID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, state, nil)
}

// Discard godoc
// @Summary Закрыть форму без отправки
// @Description Загруженные фото ставятся в очередь на удаление с хостинга
// @Tags Forms
// @Produce json
// @Param id path string true "ID формы"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/forms/{id} [delete]
func (h *FormHandler) Discard(c *fiber.Ctx) error {
	formID, ownerID, err := formRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := h.formUC.Discard(c.UserContext(), formID, ownerID); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateFields godoc
// @Summary Изменить поля
// @Description Тип, сделка, числовые характеристики (строкой, пустая очищает) и описание. Изменение применяется целиком или не применяется.
// @Tags Forms
// @Accept json
// @Produce json
// @Param id path string true "ID формы"
// @Param request body dto.UpdateFieldsRequest true "Изменения"
// @Success 200 {object} utils.SuccessResponse{data=dto.FormState}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/forms/{id}/fields [patch]
func (h *FormHandler) UpdateFields(c *fiber.Ctx) error {
	formID, ownerID, err := formRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.UpdateFieldsRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	state, err := h.formUC.UpdateFields(c.UserContext(), formID, ownerID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, state, nil)
}

// SelectLocation godoc
// @Summary Выбрать город
// @Description Сбрасывает улицу и закрывает список городов
// @Tags Forms
// @Accept json
// @Produce json
// @Param id path string true "ID формы"
// @Param request body dto.SelectLocationRequest true "ID локации"
// @Success 200 {object} utils.SuccessResponse{data=dto.FormState}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/forms/{id}/location [put]
func (h *FormHandler) SelectLocation(c *fiber.Ctx) error {
	formID, ownerID, err := formRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.SelectLocationRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	state, err := h.formUC.SelectLocation(c.UserContext(), formID, ownerID, req.LocationID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, state, nil)
}

// SelectStreet godoc
// @Summary Выбрать улицу
// @Description Улица должна принадлежать выбранному городу; null снимает выбор
// @Tags Forms
// @Accept json
// @Produce json
// @Param id path string true "ID формы"
// @Param request body dto.SelectStreetRequest true "ID улицы"
// @Success 200 {object} utils.SuccessResponse{data=dto.FormState}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/forms/{id}/street [put]
func (h *FormHandler) SelectStreet(c *fiber.Ctx) error {
	formID, ownerID, err := formRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.SelectStreetRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	state, err := h.formUC.SelectStreet(c.UserContext(), formID, ownerID, req.StreetID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, state, nil)
}

// SetCoordinates godoc
// @Summary Точка на карте
// @Tags Forms
// @Accept json
// @Produce json
// @Param id path string true "ID формы"
// @Param request body dto.CoordinatesRequest true "Координаты"
// @Success 200 {object} utils.SuccessResponse{data=dto.FormState}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/forms/{id}/coordinates [put]
func (h *FormHandler) SetCoordinates(c *fiber.Ctx) error {
	formID, ownerID, err := formRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.CoordinatesRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	state, err := h.formUC.SetCoordinates(c.UserContext(), formID, ownerID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, state, nil)
}

// SetFlyTo godoc
// @Summary Подсказка карте перелететь к точке
// @Tags Forms
// @Accept json
// @Produce json
// @Param id path string true "ID формы"
// @Param request body dto.FlyToRequest true "Цель; null сбрасывает"
// @Success 200 {object} utils.SuccessResponse{data=dto.FormState}
// @Router /api/v1/forms/{id}/fly-to [put]
func (h *FormHandler) SetFlyTo(c *fiber.Ctx) error {
	formID, ownerID, err := formRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.FlyToRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	state, err := h.formUC.SetFlyTo(c.UserContext(), formID, ownerID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, state, nil)
}

// SetUI godoc
// @Summary Состояние интерфейса формы
// @Description Открытые списки, строки поиска и центр карты
// @Tags Forms
// @Accept json
// @Produce json
// @Param id path string true "ID формы"
// @Param request body dto.UIRequest true "Изменения"
// @Success 200 {object} utils.SuccessResponse{data=dto.FormState}
// @Router /api/v1/forms/{id}/ui [put]
func (h *FormHandler) SetUI(c *fiber.Ctx) error {
	formID, ownerID, err := formRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.UIRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	state, err := h.formUC.SetUI(c.UserContext(), formID, ownerID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, state, nil)
}

// ToggleFlag godoc
// @Summary Переключить вариант в группе флагов
// @Tags Forms
// @Accept json
// @Produce json
// @Param id path string true "ID формы"
// @Param group path string true "Группа (propertyCharacteristics, furnitureAndAppliances, buildingParameters, badges)"
// @Param request body dto.ToggleFlagRequest true "Бит варианта"
// @Success 200 {object} utils.SuccessResponse{data=dto.ToggleFlagResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/forms/{id}/flags/{group}/toggle [post]
func (h *FormHandler) ToggleFlag(c *fiber.Ctx) error {
	formID, ownerID, err := formRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.ToggleFlagRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	result, err := h.formUC.ToggleFlag(c.UserContext(), formID, ownerID, domain.FlagGroup(c.Params("group")), req.Value)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// CityOptions godoc
// @Summary Выпадающий список городов
// @Tags Forms
// @Produce json
// @Param id path string true "ID формы"
// @Param q query string false "Подстрока"
// @Success 200 {object} utils.SuccessResponse{data=dto.CityOptionsResponse}
// @Router /api/v1/forms/{id}/cities [get]
func (h *FormHandler) CityOptions(c *fiber.Ctx) error {
	formID, ownerID, err := formRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	result, err := h.formUC.CityOptions(c.UserContext(), formID, ownerID, c.Query("q"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// StreetOptions godoc
// @Summary Выпадающий список улиц выбранного города
// @Tags Forms
// @Produce json
// @Param id path string true "ID формы"
// @Param q query string false "Подстрока"
// @Success 200 {object} utils.SuccessResponse{data=dto.StreetOptionsResponse}
// @Router /api/v1/forms/{id}/streets [get]
func (h *FormHandler) StreetOptions(c *fiber.Ctx) error {
	formID, ownerID, err := formRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	result, err := h.formUC.StreetOptions(c.UserContext(), formID, ownerID, c.Query("q"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// SetPrice godoc
// @Summary Цена
// @Description Ввод в USD или GEL, итогом или за м²; в черновик пишется итог в USD
// @Tags Forms
// @Accept json
// @Produce json
// @Param id path string true "ID формы"
// @Param request body dto.SetPriceRequest true "Цена"
// @Success 200 {object} utils.SuccessResponse{data=dto.FormState}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/forms/{id}/price [put]
func (h *FormHandler) SetPrice(c *fiber.Ctx) error {
	formID, ownerID, err := formRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.SetPriceRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	state, err := h.formUC.SetPrice(c.UserContext(), formID, ownerID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, state, nil)
}

// AddImages godoc
// @Summary Добавить фото
// @Description Файлы сразу появляются в списке и загружаются в фоне
// @Tags Forms
// @Accept mpfd
// @Produce json
// @Param id path string true "ID формы"
// @Param files formData file true "Изображения"
// @Success 202 {object} utils.SuccessResponse{data=[]domain.ImageItem}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/forms/{id}/images [post]
func (h *FormHandler) AddImages(c *fiber.Ctx) error {
	formID, ownerID, err := formRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	files, err := readImages(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	items, err := h.formUC.AddImages(c.UserContext(), formID, ownerID, files)
	if err != nil {
		return utils.SendError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(utils.SuccessResponse{Data: items})
}

// readImages - файлы изображений из multipart формы
func readImages(c *fiber.Ctx) ([]domain.ImageFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithMessage("Expected multipart form")
	}

	headers := form.File[imagesFormField]
	if len(headers) > maxImagesPerAdd {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"field": imagesFormField, "rule": "max", "param": maxImagesPerAdd})
	}

	files := make([]domain.ImageFile, 0, len(headers))
	for _, fh := range headers {
		contentType := fh.Header.Get(fiber.HeaderContentType)
		if !strings.HasPrefix(contentType, "image/") {
			return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"field": imagesFormField, "rule": "image", "file": fh.Filename})
		}

		f, err := fh.Open()
		if err != nil {
			return nil, errors.ErrInvalidRequest.WithMessage("Failed to read uploaded file")
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, errors.ErrInvalidRequest.WithMessage("Failed to read uploaded file")
		}

		files = append(files, domain.ImageFile{Name: fh.Filename, ContentType: contentType, Data: data})
	}
	return files, nil
}

// ReorderImages godoc
// @Summary Переставить фото
// @Description Первое фото становится обложкой
// @Tags Forms
// @Accept json
// @Produce json
// @Param id path string true "ID формы"
// @Param request body dto.ReorderImagesRequest true "from/to, activeId/overId или order"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.ImageItem}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/forms/{id}/images/order [put]
func (h *FormHandler) ReorderImages(c *fiber.Ctx) error {
	formID, ownerID, err := formRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	var req dto.ReorderImagesRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	items, err := h.formUC.ReorderImages(c.UserContext(), formID, ownerID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, items, nil)
}

// RemoveImage godoc
// @Summary Удалить фото
// @Tags Forms
// @Produce json
// @Param id path string true "ID формы"
// @Param imageId path string true "ID фото"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.ImageItem}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/forms/{id}/images/{imageId} [delete]
func (h *FormHandler) RemoveImage(c *fiber.Ctx) error {
	formID, ownerID, err := formRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	items, err := h.formUC.RemoveImage(c.UserContext(), formID, ownerID, c.Params("imageId"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, items, nil)
}

// Notifications godoc
// @Summary Уведомления формы
// @Description Возвращает и очищает накопленные уведомления (например, о неудачной загрузке)
// @Tags Forms
// @Produce json
// @Param id path string true "ID формы"
// @Success 200 {object} utils.SuccessResponse{data=dto.NotificationsResponse}
// @Router /api/v1/forms/{id}/notifications [get]
func (h *FormHandler) Notifications(c *fiber.Ctx) error {
	formID, ownerID, err := formRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	result, err := h.formUC.Notifications(c.UserContext(), formID, ownerID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// Submit godoc
// @Summary Отправить объявление
// @Description Проверяет черновик, собирает тело запроса и создаёт объявление на бэкенде. При ошибке черновик сохраняется.
// @Tags Forms
// @Produce json
// @Param id path string true "ID формы"
// @Success 201 {object} utils.SuccessResponse{data=dto.SubmitResponse}
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/forms/{id}/submit [post]
func (h *FormHandler) Submit(c *fiber.Ctx) error {
	session, err := middleware.AuthSession(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	result, err := h.submitUC.Submit(c.UserContext(), c.Params("id"), session)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, result)
}
