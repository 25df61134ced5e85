// internals/features/school/schools/controller/school_controller.go
package controller

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	schoolDTO "edubreezy_backend/internals/features/school/schools/dto"
	schoolModel "edubreezy_backend/internals/features/school/schools/model"
	helper "edubreezy_backend/internals/helpers"
)

type SchoolController struct {
	DB *gorm.DB
}

func NewSchoolController(db *gorm.DB) *SchoolController {
	return &SchoolController{DB: db}
}

// GET /api/a/school
func (ctrl *SchoolController) GetMySchool(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var school schoolModel.SchoolModel
	if err := ctrl.DB.First(&school, "school_id = ?", schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Sekolah tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data sekolah")
	}
	return helper.JsonOK(c, "Detail sekolah", schoolDTO.FromSchoolModel(school))
}

// POST /api/a/school/agent-key/rotate
//
// Generate key baru, simpan hash-nya, tampilkan key mentah SEKALI.
// Agent lama langsung tertolak setelah rotasi.
func (ctrl *SchoolController) RotateAgentKey(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal generate agent key")
	}
	rawKey := "ebk_" + hex.EncodeToString(buf)

	hash, err := bcrypt.GenerateFromPassword([]byte(rawKey), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal hash agent key")
	}

	res := ctrl.DB.Model(&schoolModel.SchoolModel{}).
		Where("school_id = ?", schoolID).
		Update("school_agent_key_hash", string(hash))
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan agent key")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Sekolah tidak ditemukan")
	}

	return helper.JsonOK(c, "Agent key dirotasi. Simpan sekarang, tidak akan ditampilkan lagi.", schoolDTO.AgentKeyResponse{
		SchoolID:  schoolID,
		AgentKey:  rawKey,
		RotatedAt: time.Now().UTC(),
	})
}
