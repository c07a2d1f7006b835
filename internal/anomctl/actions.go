package anomctl

// Indirection layer to allow stubbing in tests

var (
	fnInstall = doInstall

	fnFetchWeight  = fetchWeight
	fnListWeights  = listWeights
	fnWeightInfo   = weightInfo
	fnVerifyWeight = verifyWeight
	fnEvictWeight  = evictWeight
	fnWeightPath   = weightPath
	fnHistory      = showHistory

	fnStatus = showStatus
)
