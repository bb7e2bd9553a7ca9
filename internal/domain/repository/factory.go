package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Products() ProductRepository
	Customers() CustomerRepository
	Orders() OrderRepository
}
