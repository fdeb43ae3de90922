package services

import "github.com/khunmostz/Repair-Management-System/internal/repositories"

// The pgx repositories must satisfy the store interfaces the services
// consume; a signature drift here breaks the server wiring.
var (
	_ UserStore          = (*repositories.UserRepository)(nil)
	_ CategoryStore      = (*repositories.CategoryRepository)(nil)
	_ RepairRequestStore = (*repositories.RepairRequestRepository)(nil)
	_ SettingStore       = (*repositories.SettingRepository)(nil)
)
