package model

// 配送先の県（エジプト）。送料テーブルのキー。
type Governorate string

const (
	GovernorateCairo        Governorate = "CAIRO"
	GovernorateGiza         Governorate = "GIZA"
	GovernorateAlexandria   Governorate = "ALEXANDRIA"
	GovernorateDakahlia     Governorate = "DAKAHLIA"
	GovernorateGharbia      Governorate = "GHARBIA"
	GovernorateSharkia      Governorate = "SHARKIA"
	GovernorateRedSea       Governorate = "RED_SEA"
	GovernorateSouthSinai   Governorate = "SOUTH_SINAI"
	GovernorateAswan        Governorate = "ASWAN"
	GovernorateLuxor        Governorate = "LUXOR"
	GovernorateBeheira      Governorate = "BEHEIRA"
	GovernorateFayoum       Governorate = "FAYOUM"
	GovernorateIsmailia     Governorate = "ISMAILIA"
	GovernorateMenofia      Governorate = "MENOFIA"
	GovernorateMinya        Governorate = "MINYA"
	GovernorateQaliubiya    Governorate = "QALIUBIYA"
	GovernorateNewValley    Governorate = "NEW_VALLEY"
	GovernorateSuez         Governorate = "SUEZ"
	GovernorateAssiut       Governorate = "ASSIUT"
	GovernorateBeniSuef     Governorate = "BENI_SUEF"
	GovernoratePortSaid     Governorate = "PORT_SAID"
	GovernorateDamietta     Governorate = "DAMIETTA"
	GovernorateKafrElSheikh Governorate = "KAFR_EL_SHEIKH"
	GovernorateMatrouh      Governorate = "MATROUH"
	GovernorateQena         Governorate = "QENA"
	GovernorateNorthSinai   Governorate = "NORTH_SINAI"
	GovernorateSohag        Governorate = "SOHAG"
)
