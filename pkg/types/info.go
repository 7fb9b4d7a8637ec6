package types

// KeyInformationClass selects which information block a key query returns.
type KeyInformationClass uint32

const (
	KeyBasicInformation KeyInformationClass = 0
	KeyFullInformation  KeyInformationClass = 2
)

// KeyValueInformationClass selects which information block a value query returns.
type KeyValueInformationClass uint32

const (
	KeyValuePartialInformation KeyValueInformationClass = 2
)
