package serviceInfo

import "fmt"

type ServiceInfo string

var (
	SERVICE_NAME        ServiceInfo = "Genolens Insight Service"
	SERVICE_WELCOME     ServiceInfo = "Welcome to the Genolens genomic insight API!"
	SERVICE_DESCRIPTION ServiceInfo = "AI-assisted genomic insight extraction and dashboard service."

	SERVICE_ARTIFACT    ServiceInfo = "genolens"
	SERVICE_TYPE_NO_VER ServiceInfo = ServiceInfo(fmt.Sprintf("io.genolens:%s", SERVICE_ARTIFACT))
	SERVICE_ID          ServiceInfo = SERVICE_TYPE_NO_VER
)
