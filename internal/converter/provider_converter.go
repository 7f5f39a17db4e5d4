package converter

import (
	"home-service-booking/internal/delivery/dto"
	"home-service-booking/internal/domain/entity"
)

// ProviderToResponse converts a Provider entity to ProviderResponse DTO
func ProviderToResponse(provider *entity.Provider) *dto.ProviderResponse {
	if provider == nil {
		return nil
	}

	serviceTypes := make([]string, len(provider.ServiceTypes))
	copy(serviceTypes, provider.ServiceTypes)

	return &dto.ProviderResponse{
		ID:           provider.ID,
		Name:         provider.Name,
		Email:        provider.Email,
		Phone:        provider.Phone,
		ServiceTypes: serviceTypes,
		IsAvailable:  provider.IsAvailable,
		CreatedAt:    provider.CreatedAt,
	}
}

func ProvidersToResponses(providers []entity.Provider) []dto.ProviderResponse {
	responses := make([]dto.ProviderResponse, len(providers))
	for i := range providers {
		responses[i] = *ProviderToResponse(&providers[i])
	}
	return responses
}
