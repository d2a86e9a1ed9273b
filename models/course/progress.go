package course

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompleteLessonProgress marks the (enrollment, lesson) progress row complete,
// creating it first if enrollment predates the lesson. It then re-runs the
// enrollment completion cascade. Returns the progress row and whether the
// enrollment flipped to completed in this call. Completion is monotone: rows
// already complete are left untouched and the enrollment flag is never reset.
func CompleteLessonProgress(tx *gorm.DB, enrollment *Enrollment, lessonID uint) (*LessonProgress, bool, error) {
	progress := LessonProgress{
		EnrollmentID: enrollment.ID,
		LessonID:     lessonID,
	}
	// Upsert guarded by the (enrollment_id, lesson_id) unique index so
	// concurrent requests cannot create duplicate rows.
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "enrollment_id"}, {Name: "lesson_id"}},
		DoNothing: true,
	}).Create(&progress).Error; err != nil {
		return nil, false, err
	}
	if err := tx.Where("enrollment_id = ? AND lesson_id = ?", enrollment.ID, lessonID).
		First(&progress).Error; err != nil {
		return nil, false, err
	}

	if !progress.IsCompleted {
		now := time.Now()
		progress.IsCompleted = true
		progress.CompletedAt = &now
		if err := tx.Save(&progress).Error; err != nil {
			return nil, false, err
		}
	}

	flipped, err := syncEnrollmentCompletion(tx, enrollment)
	if err != nil {
		return nil, false, err
	}
	return &progress, flipped, nil
}

// syncEnrollmentCompletion recomputes completed vs total lessons and sets the
// enrollment completed flag when every lesson is done
func syncEnrollmentCompletion(tx *gorm.DB, enrollment *Enrollment) (bool, error) {
	if enrollment.IsCompleted {
		return false, nil
	}

	completed, total, err := CountLessonProgress(tx, enrollment)
	if err != nil {
		return false, err
	}

	if total == 0 || completed < total {
		return false, nil
	}

	now := time.Now()
	enrollment.IsCompleted = true
	enrollment.CompletedAt = &now
	if err := tx.Save(enrollment).Error; err != nil {
		return false, err
	}
	return true, nil
}

// CountLessonProgress returns completed and total lesson counts for an enrollment
func CountLessonProgress(tx *gorm.DB, enrollment *Enrollment) (int64, int64, error) {
	var completed, total int64
	if err := tx.Model(&LessonProgress{}).
		Where("enrollment_id = ? AND is_completed = ?", enrollment.ID, true).
		Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	if err := tx.Model(&Lesson{}).
		Where("course_id = ? AND is_deleted = ?", enrollment.CourseID, false).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	return completed, total, nil
}

// ProgressPercent derives the display percentage; 0 for empty courses
func ProgressPercent(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
