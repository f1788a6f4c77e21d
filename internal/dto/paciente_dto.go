package dto

type PacienteRequest struct {
	Nombre          string  `json:"nombre"           validate:"required,min=2,max=100"`
	Apellido        string  `json:"apellido"         validate:"required,min=2,max=100"`
	DNI             string  `json:"dni"              validate:"omitempty,max=20"`
	FechaNacimiento *string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	ObraSocial      *string `json:"obra_social"`
	Contacto        *string `json:"contacto"`
}

type PacienteResponse struct {
	ID              string  `json:"id"`
	Nombre          string  `json:"nombre"`
	Apellido        string  `json:"apellido"`
	DNI             string  `json:"dni"`
	FechaNacimiento *string `json:"fecha_nacimiento"`
	ObraSocial      *string `json:"obra_social"`
	Contacto        *string `json:"contacto"`
}
