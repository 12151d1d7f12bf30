package repositories

import "gorm.io/gorm"

// campaignLockNamespace keeps campaign advisory locks from colliding with
// any other advisory-lock user of the same database.
const campaignLockNamespace = 7201

// AcquireCampaignLock takes a transaction-scoped postgres advisory lock
// keyed by campaign. It serializes the replacement flow per campaign so
// two concurrent replacements cannot both spend the same remaining budget.
// The lock releases automatically at commit or rollback.
func AcquireCampaignLock(tx *gorm.DB, campaignID uint) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", campaignLockNamespace, int64(campaignID)).Error
}
