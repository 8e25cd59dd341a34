package graph

// User is a registered member of the network. Password holds the bcrypt
// hash and is never serialized. Deletion is a soft-delete flag; nodes are
// not physically removed.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Slug         string `json:"slug"`
	Password     string `json:"-"`
	Role         string `json:"role"`
	Avatar       string `json:"avatar"`
	LocationName string `json:"locationName,omitempty"`
	About        string `json:"about,omitempty"`
	Deleted      bool   `json:"deleted"`
	Disabled     bool   `json:"disabled"`
	Verified     bool   `json:"verified"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

// Statistics is a flat snapshot of live entity and relationship counts,
// computed fresh on every request.
type Statistics struct {
	CountUsers         int64 `json:"countUsers"`
	CountPosts         int64 `json:"countPosts"`
	CountComments      int64 `json:"countComments"`
	CountNotifications int64 `json:"countNotifications"`
	CountOrganizations int64 `json:"countOrganizations"`
	CountProjects      int64 `json:"countProjects"`
	CountInvites       int64 `json:"countInvites"`
	CountFollows       int64 `json:"countFollows"`
	CountShouts        int64 `json:"countShouts"`
}
