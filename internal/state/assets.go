package state

// Asset is a file stored in the remote service.
type Asset struct {
	ID       string
	Name     string
	Size     int64
	Status   string
	FolderID string
	Path     string
}

// AssetStore caches asset listings per folder.
type AssetStore interface {
	Assets(folderID string) ([]Asset, bool)
	SetAssets(folderID string, assets []Asset)
	Invalidate(folderID string)
	UpdateStatus(assetID, status string) bool
	Cursor(folderID string) int
	SetCursor(folderID string, cursor int)
}

type assetStore struct {
	byFolder map[string][]Asset
	cursors  map[string]int
}

func NewAssetStore() AssetStore {
	return &assetStore{
		byFolder: make(map[string][]Asset),
		cursors:  make(map[string]int),
	}
}

func (s *assetStore) Assets(folderID string) ([]Asset, bool) {
	assets, ok := s.byFolder[folderID]
	if !ok {
		return nil, false
	}
	return cloneAssets(assets), true
}

func (s *assetStore) SetAssets(folderID string, assets []Asset) {
	dup := cloneAssets(assets)
	if dup == nil {
		dup = []Asset{}
	}
	s.byFolder[folderID] = dup
}

func (s *assetStore) Invalidate(folderID string) {
	delete(s.byFolder, folderID)
	delete(s.cursors, folderID)
}

// UpdateStatus rewrites the status of every cached copy of assetID.
func (s *assetStore) UpdateStatus(assetID, status string) bool {
	updated := false
	for _, assets := range s.byFolder {
		for i := range assets {
			if assets[i].ID == assetID {
				assets[i].Status = status
				updated = true
			}
		}
	}
	return updated
}

// Cursor returns the remembered cursor for folderID, or -1.
func (s *assetStore) Cursor(folderID string) int {
	if c, ok := s.cursors[folderID]; ok {
		return c
	}
	return -1
}

func (s *assetStore) SetCursor(folderID string, cursor int) {
	s.cursors[folderID] = cursor
}

func cloneAssets(assets []Asset) []Asset {
	if assets == nil {
		return nil
	}
	dup := make([]Asset, len(assets))
	copy(dup, assets)
	return dup
}
