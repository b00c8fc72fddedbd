package web

import "github.com/erazemk/sickfits/internal/model"

// Documents the storefront runs against the GraphQL schema.
const (
	currentUserQuery = `query CURRENT_USER_QUERY {
  me { id email name permissions }
}`

	allItemsQuery = `query ALL_ITEMS_QUERY($skip: Int = 0, $first: Int) {
  items(skip: $skip, first: $first) { id title price description image largeImage }
}`

	paginationQuery = `query PAGINATION_QUERY {
  itemsConnection { aggregate { count } }
}`

	singleItemQuery = `query SINGLE_ITEM_QUERY($id: ID!) {
  item(id: $id) { id title price description image largeImage user { id } }
}`

	createItemMutation = `mutation CREATE_ITEM_MUTATION(
  $title: String!
  $description: String!
  $price: Int!
  $image: String
  $largeImage: String
) {
  createItem(title: $title, description: $description, price: $price, image: $image, largeImage: $largeImage) { id }
}`

	updateItemMutation = `mutation UPDATE_ITEM_MUTATION($id: ID!, $title: String, $description: String, $price: Int) {
  updateItem(id: $id, title: $title, description: $description, price: $price) { id }
}`

	deleteItemMutation = `mutation DELETE_ITEM_MUTATION($id: ID!) {
  deleteItem(id: $id) { id }
}`

	signupMutation = `mutation SIGNUP_MUTATION($email: String!, $name: String!, $password: String!) {
  signup(email: $email, name: $name, password: $password) { id }
}`

	signinMutation = `mutation SIGNIN_MUTATION($email: String!, $password: String!) {
  signin(email: $email, password: $password) { id }
}`

	signoutMutation = `mutation SIGN_OUT_MUTATION {
  signout { message }
}`

	requestResetMutation = `mutation REQUEST_RESET_MUTATION($email: String!) {
  requestReset(email: $email) { message }
}`

	resetMutation = `mutation RESET_MUTATION($resetToken: String!, $password: String!, $confirmPassword: String!) {
  resetPassword(resetToken: $resetToken, password: $password, confirmPassword: $confirmPassword) { id }
}`
)

type meView struct {
	ID          string
	Email       string
	Name        string
	Permissions []string
}

func (m *meView) hasAny(perms ...string) bool {
	if m == nil {
		return false
	}
	for _, have := range m.Permissions {
		for _, want := range perms {
			if have == want {
				return true
			}
		}
	}
	return false
}

// CanManagePermissions reports whether the permissions page is available.
func (m *meView) CanManagePermissions() bool {
	return m.hasAny(model.PermissionAdmin, model.PermissionPermissionUpdate)
}

type itemView struct {
	ID          string
	Title       string
	Price       int
	Description string
	Image       string
	LargeImage  string
	User        *struct{ ID string }
}
