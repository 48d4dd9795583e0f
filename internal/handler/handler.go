package handler

import "carehome-backend/internal/service"

type Handlers struct {
	Alert      *AlertHandler
	Resident   *ResidentHandler
	FoodFluid  *FoodFluidHandler
	NightCheck *NightCheckHandler
	Medication *MedicationHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Alert:      NewAlertHandler(services.Alert),
		Resident:   NewResidentHandler(services.Resident),
		FoodFluid:  NewFoodFluidHandler(services.FoodFluid),
		NightCheck: NewNightCheckHandler(services.NightCheck),
		Medication: NewMedicationHandler(services.Medication),
	}
}
