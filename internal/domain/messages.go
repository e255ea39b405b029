package domain

// Client-facing messages. The API speaks Spanish.
const (
	MsgEventNotFound            = "Evento no encontrado"
	MsgEventNotEnabled          = "El evento no está habilitado para inscripciones"
	MsgEnrollPastEvent          = "No se puede inscribir a un evento que ya pasó o es hoy"
	MsgUnenrollPastEvent        = "No se puede desinscribir de un evento que ya pasó o es hoy"
	MsgAlreadyEnrolled          = "Ya estás registrado en este evento"
	MsgNotEnrolled              = "No estás registrado en este evento"
	MsgEventFull                = "El evento ha alcanzado su capacidad máxima"
	MsgEnrolled                 = "Inscripción realizada exitosamente"
	MsgUnenrolled               = "Desinscripción realizada exitosamente"
	MsgEventNotFoundForUpdate   = "Evento no encontrado o no autorizado para editar"
	MsgEventNotFoundForDelete   = "Evento no encontrado o no autorizado para eliminar"
	MsgEventUpdateForbidden     = "No autorizado para editar este evento"
	MsgEventDeleteForbidden     = "No autorizado para eliminar este evento"
	MsgEventHasEnrollments      = "No se puede eliminar un evento con participantes registrados"
	MsgAssistanceOverCapacity   = "La capacidad máxima del evento no puede superar la capacidad de la ubicación"
	MsgAssistanceBelowEnrolled  = "La capacidad máxima del evento no puede ser menor a la cantidad de inscriptos"
	MsgEventLocationMissing     = "La ubicación del evento no existe"
	MsgEventCreated             = "Evento creado exitosamente"
	MsgEventUpdated             = "Evento actualizado exitosamente"
	MsgEventDeleted             = "Evento eliminado exitosamente"
	MsgLocationNotFound         = "Ubicación no encontrada"
	MsgLocationNotFoundForUser  = "Ubicación no encontrada o no autorizada"
	MsgLocationReferenceMissing = "La ubicación especificada no existe"
	MsgLocationInUse            = "No se puede eliminar una ubicación que está siendo utilizada por eventos"
	MsgLocationCreated          = "Ubicación creada exitosamente"
	MsgLocationUpdated          = "Ubicación actualizada exitosamente"
	MsgLocationDeleted          = "Ubicación eliminada exitosamente"
	MsgInvalidCredentials       = "Usuario o clave inválida"
	MsgEmailTaken               = "El email ya está registrado"
	MsgInvalidEmail             = "El email es inválido"
	MsgUserRegistered           = "Usuario registrado exitosamente"
	MsgUserNotFound             = "Usuario no encontrado"
	MsgInternalError            = "Error interno del servidor"
)
