package entity

// Admin is a back-office user allowed to run swap and collection
// workflows. AdminID is the ledger foreign key; it must be present on
// every provisioned account.
type Admin struct {
	AdminID      string `json:"admin_id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
}
