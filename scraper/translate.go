package scraper

import "mobide/models"

// Bilingual lookup tables for the German labels the marketplace emits.
// Unknown codes always pass through untranslated.

var fuelTypeRU = map[string]string{
	"Benzin":                  "Бензин",
	"Hybrid (Benzin/Elektro)": "Гибрид",
	"Hybrid (Diesel/Elektro)": "Гибрид",
	"Diesel":                  "Дизель",
}

var transmissionTypeRU = map[string]string{
	"Automatik":      "Автомат",
	"Halbautomatik":  "Полуавтомат",
	"Schaltgetriebe": "Ручная",
}

// FeatureTranslation links a German equipment label to the provider's
// enum value and the localized label.
type FeatureTranslation struct {
	Label string `json:"label"`
	Value string `json:"value"`
	RU    string `json:"ru"`
}

// Features is the full equipment vocabulary, exposed verbatim on the
// reference endpoint and used to translate detail-page feature lists.
var Features = []FeatureTranslation{
	{"ABS", "ABS", "Антиблокировочная система (ABS)"},
	{"Abstandswarner", "DISTANCE_WARNING_SYSTEM", "Система экстренного торможения"},
	{"Adaptives Kurvenlicht", "ADAPTIVE_BENDING_LIGHTS", "Адаптивный свет"},
	{"Allradantrieb", "FOUR_WHEEL_DRIVE", "Полный привод"},
	{"Allwetterreifen", "ALL_SEASON_TIRES", "Всесезонные шины"},
	{"Beheizbare Frontscheibe", "HEATED_WINDSHIELD", "Обогрев лобового стекла"},
	{"Berganfahrassistent", "HILL_START_ASSIST", "Система помощи при трогании на подъеме"},
	{"Bi-Xenon Scheinwerfer", "BI_XENON_HEADLIGHTS", "Биксеноновые фары"},
	{"Blendfreies Fernlicht", "GLARE_FREE_HIGH_BEAM", "Антибликовый свет"},
	{"Dachreling", "ROOF_RAILS", "Рейлинги на крыше"},
	{"Elektr. Heckklappe", "ELECTRIC_TAILGATE", "Электропривод двери багажника"},
	{"Elektr. Wegfahrsperre", "IMMOBILIZER", "Иммобилайзер"},
	{"ESP", "ESP", "Система стабилизации (ESP)"},
	{"Fernlichtassistent", "HIGH_BEAM_ASSIST", "Ассистент дальнего света"},
	{"Geschwindigkeits- begrenzungsanlage", "SPEED_LIMITER", "Система ограничения скорости"},
	{"Kurvenlicht", "BENDING_LIGHTS", "Поворотный свет"},
	{"Laserlicht", "LASER_HEADLIGHTS", "Лазерные фары"},
	{"LED-Scheinwerfer", "LED_HEADLIGHTS", "Светодиодные фары"},
	{"LED-Tagfahrlicht", "LED_RUNNING_LIGHTS", "Светодиодные дневные ходовые огни"},
	{"Leichtmetallfelgen", "ALLOY_WHEELS", "Литые диски"},
	{"Lichtsensor", "LIGHT_SENSOR", "Датчик освещенности"},
	{"Luftfederung", "AIR_SUSPENSION", "Пневматическая подвеска"},
	{"Nachtsichtassistent", "NIGHT_VISION_ASSIST", "Ассистент ночного видения"},
	{"Nebelscheinwerfer", "FRONT_FOG_LIGHTS", "Противотуманные фары"},
	{"Notbremsassistent", "COLLISION_AVOIDANCE", "Ассистент экстренного торможения"},
	{"Notrad", "EMERGENCY_WHEEL", "Запасное колесо"},
	{"Pannenkit", "REPAIR_KIT", "Разборный комплект"},
	{"Panoramadach", "PANORAMIC_GLASS_ROOF", "Панорамная крыша"},
	{"Regensensor", "AUTOMATIC_RAIN_SENSOR", "Датчик дождя"},
	{"Reifendruckkontrolle", "TIRE_PRESSURE_MONITORING", "Контроль давления в шинах"},
	{"Reserverad", "SPARE_WHEEL", "Запасное колесо"},
	{"Scheinwerferreinigung", "HEADLIGHT_WASHER_SYSTEM", "Очистка фар"},
	{"Schiebedach", "SUNROOF", "Люк на крыше"},
	{"Schlüssellose Zentralverriegelung (Keyless)", "KEYLESS_ENTRY", "Центральный замок без ключа (Keyless)"},
	{"Servolenkung", "POWER_ASSISTED_STEERING", "Усилитель руля"},
	{"Sommerreifen", "SUMMER_TIRES", "Летние шины"},
	{"Sportfahrwerk", "PERFORMANCE_HANDLING_SYSTEM", "Спортивная подвеска"},
	{"Sportpaket", "SPORT_PACKAGE", "Спортивный пакет"},
	{"Spurhalteassistent", "LANE_DEPARTURE_WARNING", "Помощник по поддержанию полосы движения"},
	{"Stahlfelgen", "STEEL_WHEELS", "Стальные диски"},
	{"Start/Stopp-Automatik", "START_STOP_SYSTEM", "Автоматический старт/стоп"},
	{"Tagfahrlicht", "DAYTIME_RUNNING_LIGHTS", "Дневные ходовые огни"},
	{"Totwinkelassistent", "BLIND_SPOT_MONITOR", "Помощник по слепым зонам"},
	{"Traktionskontrolle", "TRACTION_CONTROL_SYSTEM", "Контроль тяги"},
	{"Verkehrszeichenerkennung", "TRAFFIC_SIGN_RECOGNITION", "Распознавание дорожных знаков"},
	{"Nichtraucher-Fahrzeug", "Nichtraucher-Fahrzeug", "Автомобиль для некурящих"},
	{"Schlüssellose Zentralverriegelung", "Schlüssellose Zentralverriegelung", "Центральный замок без ключа"},
	{"Garantie", "Garantie", "Гарантия"},
	{"Anhängerkupplung fest", "Anhängerkupplung fest", "Фиксированное прицепное устройство"},
	{"Winterreifen", "WINTER_TIRES", "Зимние шины"},
	{"Xenonscheinwerfer", "XENON_HEADLIGHTS", "Ксеноновые фары"},
	{"Zentralverriegelung", "CENTRAL_LOCKING", "Центральный замок"},
	{"Tempomat", "CRUISE_CONTROL", "Круиз-контроль"},
	{"Abstandstempomat", "ADAPTIVE_CRUISE_CONTROL", "Дистанционный круиз-контроль"},
	{"Alarmanlage", "ALARM_SYSTEM", "Система сигнализации"},
	{"Ambiente-Beleuchtung", "AMBIENT_LIGHTING", "Окружающее освещение"},
	{"Android Auto", "ANDROID_AUTO", "Андроид Авто"},
	{"Apple CarPlay", "CARPLAY", "Apple CarPlay"},
	{"Armlehne", "ARM_REST", "Подлокотник"},
	{"Beheizbares Lenkrad", "HEATED_STEERING_WHEEL", "Руль с подогревом"},
	{"Behindertengerecht", "DISABLED_ACCESSIBLE", "Доступно для людей с ограниченными возможностями"},
	{"Bluetooth", "BLUETOOTH", "Bluetooth"},
	{"Bordcomputer", "ON_BOARD_COMPUTER", "Бортовой компьютер"},
	{"CD-Spieler", "CD_PLAYER", "CD-плеер"},
	{"Elektr. Fensterheber", "ELECTRIC_WINDOWS", "Электрические стеклоподъемники"},
	{"Elektr. Seitenspiegel", "ELECTRIC_EXTERIOR_MIRRORS", "Электрическое боковое зеркало"},
	{"Elektr. Sitzeinstellung", "ELECTRIC_ADJUSTABLE_SEATS", "Электрическая регулировка сиденья"},
	{"Elektr. Sitzeinstellung, hinten", "ELECTRIC_BACKSEAT_ADJUSTMENT", "Электрическая регулировка сиденья сзади"},
	{"Freisprecheinrichtung", "HANDS_FREE_PHONE_SYSTEM", "Громкая связь"},
	{"Gepäckraumabtrennung", "CARGO_BARRIER", "Перегородка багажного отделения"},
	{"Head-Up Display", "HEAD_UP_DISPLAY", "Проекционный дисплей"},
	{"Induktionsladen für Smartphones", "WIRELESS_CHARGING", "Индукционная зарядка для смартфонов"},
	{"Innenspiegel autom. abblendend", "DIMMING_INTERIOR_MIRROR", "Авто салонное зеркало затемнение"},
	{"Isofix", "ISOFIX", "Изофикс"},
	{"Isofix Beifahrersitz", "PASSENGER_SEAT_ISOFIX_POINT", "Пассажирское сиденье изофикс"},
	{"Lederlenkrad", "LEATHER_STEERING_WHEEL", "Кожаный руль"},
	{"Lordosenstütze", "LUMBAR_SUPPORT", "Поясничная поддержка"},
	{"Massagesitze", "MASSAGE_SEATS", "Массажные сиденья"},
	{"Müdigkeitswarner", "FATIGUE_WARNING_SYSTEM", "Предупреждение об усталости"},
	{"Multifunktionslenkrad", "MULTIFUNCTIONAL_WHEEL", "Многофункциональное рулевое колесо"},
	{"Musikstreaming integriert", "INTEGRATED_MUSIC_STREAMING", "Интегрированная потоковая передача музыки"},
	{"Navigationssystem", "NAVIGATION_SYSTEM", "Навигационная система"},
	{"Notrufsystem", "EMERGENCY_CALL_SYSTEM", "Система экстренного вызова"},
	{"Radio DAB", "DAB_RADIO", "Радио DAB"},
	{"Raucherpaket", "SMOKERS_PACKAGE", "Пакет для курящих"},
	{"Schaltwippen", "PADDLE_SHIFTERS", "Подрулевые переключатели"},
	{"Sitzbelüftung", "VENTILATED_SEATS", "Вентиляция сиденья"},
	{"Sitzheizung", "ELECTRIC_HEATED_SEATS", "Подогрев сидений"},
	{"Sitzheizung hinten", "ELECTRIC_HEATED_REAR_SEATS", "Подогрев задних сидений"},
	{"Skisack", "SKI_BAG", "Лыжная сумка"},
	{"Soundsystem", "SOUND_SYSTEM", "Звуковая система"},
	{"Sportsitze", "SPORT_SEATS", "Спортивные сиденья"},
	{"Sprachsteuerung", "VOICE_CONTROL", "Голосовое управление"},
	{"Standheizung", "AUXILIARY_HEATING", "Дополнительный отопитель"},
	{"Touchscreen", "TOUCHSCREEN", "Сенсорный экран"},
	{"Tuner / Radio", "TUNER", "Тюнер/радио"},
	{"TV", "TV", "ТВ"},
	{"Umklappbarer Beifahrersitz", "FOLD_FLAT_PASSENGER_SEAT", "Складное пассажирское сиденье"},
	{"USB", "USB", "USB"},
	{"Volldigitales Kombiinstrument", "DIGITAL_COCKPIT", "Полностью цифровая комбинация приборов"},
	{"Winterpaket", "WINTER_PACKAGE", "Зимний пакет"},
	{"WLAN / Wifi Hotspot", "WIFI_HOTSPOT", "Точка доступа WLAN / Wi-Fi"},
}

var (
	featureRUByLabel    = make(map[string]string, len(Features))
	featureValueByLabel = make(map[string]string, len(Features))
)

func init() {
	for _, f := range Features {
		featureRUByLabel[f.Label] = f.RU
		featureValueByLabel[f.Label] = f.Value
	}
}

func translateFuelType(v string) string {
	if ru, ok := fuelTypeRU[v]; ok {
		return ru
	}
	return v
}

func translateTransmission(v string) string {
	if ru, ok := transmissionTypeRU[v]; ok {
		return ru
	}
	return v
}

// translateFeature maps a raw equipment label to the localized
// {label, value} pair, passing unknown labels through on both sides.
func translateFeature(raw string) models.Feature {
	f := models.Feature{Label: raw, Value: raw}
	if ru, ok := featureRUByLabel[raw]; ok {
		f.Label = ru
	}
	if v, ok := featureValueByLabel[raw]; ok {
		f.Value = v
	}
	return f
}
