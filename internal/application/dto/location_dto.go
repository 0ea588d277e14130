package dto

// CreateLocationRequest entrada para criar um local de estoque.
type CreateLocationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// UpdateLocationRequest entrada para renomear/editar um local.
type UpdateLocationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// SetActiveLocationRequest entrada de PATCH /locations.
type SetActiveLocationRequest struct {
	ActiveLocation string `json:"activeLocation"`
}

// RemoveLocationRequest entrada de DELETE /locations.
type RemoveLocationRequest struct {
	Name string `json:"name"`
}

// LocationResponse saída de um local.
type LocationResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// LocationListResponse catálogo de locais do usuário e o local ativo.
type LocationListResponse struct {
	Locations      []LocationResponse `json:"locations"`
	ActiveLocation string             `json:"activeLocation"`
}

// ActiveLocationResponse saída de PATCH /locations.
type ActiveLocationResponse struct {
	Message        string `json:"message,omitempty"`
	ActiveLocation string `json:"activeLocation"`
}
